package spec

// CheckKind selects how observed values are extracted from the live
// configuration payload.
type CheckKind string

const (
	// CheckActiveCategories verifies that required metadata categories exist
	// and are active in the category mapping.
	CheckActiveCategories CheckKind = "active-categories"
	// CheckEnabledMetrics verifies that required metrics are enabled in the
	// ingestion profiles for a given vendor and monitored-object type.
	CheckEnabledMetrics CheckKind = "enabled-metrics"
)

// Spec is a declarative set of configuration keys a deployment must satisfy.
// Specs are static data: loaded once, never mutated at runtime.
type Spec struct {
	Name       string    `yaml:"name" validate:"required,spec_name"`
	Title      string    `yaml:"title,omitempty"`
	Service    string    `yaml:"service" validate:"required"`
	Source     string    `yaml:"source" validate:"required,startswith=/"`
	Check      CheckKind `yaml:"check" validate:"required,oneof=active-categories enabled-metrics"`
	Vendor     string    `yaml:"vendor,omitempty"`
	ObjectType string    `yaml:"object_type,omitempty"`
	Require    []string  `yaml:"require"`
}

// RequiredValue is the observed value every required key must carry to pass.
func (s Spec) RequiredValue() string {
	switch s.Check {
	case CheckEnabledMetrics:
		return "enabled"
	default:
		return "active"
	}
}
