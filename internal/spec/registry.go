package spec

import (
	"fmt"
	"os"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	sensorctlerrors "github.com/plalonde/sensorctl/pkg/errors"
)

// Registry maps spec names to requirement specs. It holds the built-in specs
// and any loaded from a spec file; a file spec with a built-in name replaces
// the built-in.
type Registry struct {
	order []string
	specs map[string]Spec
}

// NewRegistry returns a registry populated with the built-in specs.
func NewRegistry() *Registry {
	r := &Registry{specs: make(map[string]Spec)}
	for _, s := range builtinSpecs() {
		r.put(s)
	}
	return r
}

func (r *Registry) put(s Spec) {
	if _, exists := r.specs[s.Name]; !exists {
		r.order = append(r.order, s.Name)
	}
	r.specs[s.Name] = s
}

// Get resolves a spec by name.
func (r *Registry) Get(name string) (Spec, error) {
	s, ok := r.specs[name]
	if !ok {
		return Spec{}, sensorctlerrors.NewSpecNotFoundError(name)
	}
	return s, nil
}

// Names lists registered spec names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// specFile is the on-disk document for user-supplied specs.
type specFile struct {
	Version string `yaml:"version" validate:"required"`
	Specs   []Spec `yaml:"specs" validate:"required,min=1,dive"`
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	specNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
	yamlLineRegex   = regexp.MustCompile(`line (\d+)`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("spec_name", func(fl validator.FieldLevel) bool {
			return specNamePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// LoadFile merges specs from a YAML file into the registry.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return sensorctlerrors.NewParseError(path, 0, err)
	}

	var file specFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return sensorctlerrors.NewParseError(path, extractLine(err), err)
	}

	v := validatorInstance()
	if err := v.Struct(&file); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return sensorctlerrors.NewValidationError(first.Namespace(), fmt.Sprintf("failed %q rule", first.Tag()), err)
		}
		return sensorctlerrors.NewValidationError("", err.Error(), err)
	}

	for i, s := range file.Specs {
		if s.Check == CheckEnabledMetrics && (s.Vendor == "" || s.ObjectType == "") {
			return sensorctlerrors.NewValidationError(
				fmt.Sprintf("specs[%d]", i),
				"enabled-metrics specs require vendor and object_type",
				nil,
			)
		}
		r.put(s)
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
