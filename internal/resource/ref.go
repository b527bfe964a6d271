package resource

import "fmt"

// Kind identifies the category of a remotely managed entity.
type Kind string

const (
	KindAgent           Kind = "agent"
	KindSession         Kind = "session"
	KindPolicy          Kind = "policy"
	KindMonitoredObject Kind = "monitored-object"
	KindEndpoint        Kind = "endpoint"
)

// Ref identifies one remote resource and the API surface version it was
// enumerated from. The version tag selects the delete endpoint as data, so
// resources reachable through several surface versions stay one logical
// target.
type Ref struct {
	ID         string
	Kind       Kind
	Version    int
	DeletePath string
}

// NewRef constructs an immutable resource reference.
func NewRef(id string, kind Kind, version int, deletePath string) Ref {
	return Ref{ID: id, Kind: kind, Version: version, DeletePath: deletePath}
}

func (r Ref) String() string {
	return fmt.Sprintf("%s/%s (v%d)", r.Kind, r.ID, r.Version)
}
