package profile

import (
	"fmt"
	"os"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	sensorctlerrors "github.com/plalonde/sensorctl/pkg/errors"
)

// File is the on-disk profile document.
type File struct {
	Version  string             `yaml:"version" validate:"required"`
	Profiles map[string]Profile `yaml:"profiles" validate:"required,min=1,dive"`
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	yamlLineRegex = regexp.MustCompile(`line (\d+)`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("base_url", func(fl validator.FieldLevel) bool {
			return validBaseURL(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Load reads a profile file from disk, validates it, and returns the set.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, sensorctlerrors.NewParseError(path, 0, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, sensorctlerrors.NewParseError(path, extractLine(err), err)
	}

	if err := validateFile(&file); err != nil {
		return nil, err
	}

	return &Set{profiles: file.Profiles}, nil
}

func validateFile(file *File) error {
	v := validatorInstance()
	if err := v.Struct(file); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return sensorctlerrors.NewValidationError(first.Namespace(), fmt.Sprintf("failed %q rule", first.Tag()), err)
		}
		return sensorctlerrors.NewValidationError("", err.Error(), err)
	}

	for name, p := range file.Profiles {
		if p.Replicated && p.TenantID == "" {
			return sensorctlerrors.NewValidationError(
				fmt.Sprintf("profiles.%s.tenant_id", name),
				"replicated profiles require a tenant id",
				nil,
			)
		}
	}

	return nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}

	return line
}

// Defaults returns the built-in local deployment profiles used when no
// profile file is supplied.
func Defaults() *Set {
	return &Set{profiles: map[string]Profile{
		ServiceAgent: {
			Name: "Agent-Orchestrate",
			URL:  "https://localhost",
			Port: "10015",
		},
		ServiceAnalytics: {
			Name: "Analytics",
			URL:  "https://localhost",
			Port: "10001",
		},
		ServiceOrchestrator: {
			Name: "Sensor-Orchestrator",
			URL:  "https://localhost",
			Port: "9081",
		},
		ServiceGateway: {
			Name: "Yang-Gateway",
			URL:  "http://localhost",
			Port: "8444",
		},
	}}
}
