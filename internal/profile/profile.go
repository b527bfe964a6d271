package profile

import (
	"fmt"
	"net/url"
	"strings"

	sensorctlerrors "github.com/plalonde/sensorctl/pkg/errors"
)

// Well-known service names. Each maps to one orchestrator API surface.
const (
	ServiceAgent        = "agent"
	ServiceAnalytics    = "analytics"
	ServiceOrchestrator = "orchestrator"
	ServiceGateway      = "gateway"
)

// Profile describes how to reach one orchestrator service. Profiles are
// read-only after load; the resource client copies what it needs.
type Profile struct {
	Name       string `yaml:"name" validate:"required,min=1,max=100"`
	URL        string `yaml:"url" validate:"required,base_url"`
	Port       string `yaml:"port,omitempty" validate:"omitempty,numeric"`
	Replicated bool   `yaml:"replicated,omitempty"`
	TenantID   string `yaml:"tenant_id,omitempty"`
	UserRoles  string `yaml:"user_roles,omitempty"`
}

// BaseURL joins URL and Port into the address requests are issued against.
func (p Profile) BaseURL() string {
	if p.Port == "" {
		return p.URL
	}
	return p.URL + ":" + p.Port
}

// Tenant returns the tenant context attached to requests in replicated
// deployments, or nil when the profile is not replicated.
func (p Profile) Tenant() *Tenant {
	if !p.Replicated {
		return nil
	}
	return &Tenant{ID: p.TenantID, Roles: p.UserRoles}
}

// Tenant is the identity envelope forwarded on every request in
// replicated mode.
type Tenant struct {
	ID    string
	Roles string
}

// Set holds the loaded profiles keyed by service name.
type Set struct {
	profiles map[string]Profile
}

// Get resolves a profile by service name.
func (s *Set) Get(service string) (Profile, error) {
	p, ok := s.profiles[service]
	if !ok {
		known := make([]string, 0, len(s.profiles))
		for name := range s.profiles {
			known = append(known, name)
		}
		return Profile{}, sensorctlerrors.NewValidationError(
			"profiles",
			fmt.Sprintf("unknown service %q (have: %s)", service, strings.Join(known, ", ")),
			nil,
		)
	}
	return p, nil
}

// Services lists the configured service names.
func (s *Set) Services() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	return names
}

func validBaseURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
