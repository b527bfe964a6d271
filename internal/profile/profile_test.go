package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	sensorctlerrors "github.com/plalonde/sensorctl/pkg/errors"
)

func writeProfileFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	validYAML := `version: "1.0"
profiles:
  analytics:
    name: "Analytics"
    url: "https://analytics.example.net"
    port: "10001"
    replicated: true
    tenant_id: "94f4456d-d5d4-48f4-a5c6-69d8d2e48ced"
    user_roles: "system,tenant-admin"
  agent:
    name: "Agent-Orchestrate"
    url: "https://agents.example.net"
`

	invalidYAML := `version: [1, 0]
profiles: oops
`

	missingURL := `version: "1.0"
profiles:
  analytics:
    name: "Analytics"
`

	badScheme := `version: "1.0"
profiles:
  analytics:
    name: "Analytics"
    url: "ftp://analytics.example.net"
`

	replicatedWithoutTenant := `version: "1.0"
profiles:
  analytics:
    name: "Analytics"
    url: "https://analytics.example.net"
    replicated: true
`

	cases := []struct {
		name     string
		contents string
		assert   func(t *testing.T, set *Set, err error)
	}{
		{
			name:     "valid file is parsed",
			contents: validYAML,
			assert: func(t *testing.T, set *Set, err error) {
				require.NoError(t, err)

				analytics, err := set.Get("analytics")
				require.NoError(t, err)
				require.Equal(t, "https://analytics.example.net:10001", analytics.BaseURL())
				require.NotNil(t, analytics.Tenant())
				require.Equal(t, "94f4456d-d5d4-48f4-a5c6-69d8d2e48ced", analytics.Tenant().ID)

				agent, err := set.Get("agent")
				require.NoError(t, err)
				require.Equal(t, "https://agents.example.net", agent.BaseURL())
				require.Nil(t, agent.Tenant())
			},
		},
		{
			name:     "invalid yaml returns parse error",
			contents: invalidYAML,
			assert: func(t *testing.T, set *Set, err error) {
				var parseErr *sensorctlerrors.ParseError
				require.ErrorAs(t, err, &parseErr)
			},
		},
		{
			name:     "missing url returns validation error",
			contents: missingURL,
			assert: func(t *testing.T, set *Set, err error) {
				var validationErr *sensorctlerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
			},
		},
		{
			name:     "non-http scheme is rejected",
			contents: badScheme,
			assert: func(t *testing.T, set *Set, err error) {
				var validationErr *sensorctlerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
			},
		},
		{
			name:     "replicated profile without tenant id is rejected",
			contents: replicatedWithoutTenant,
			assert: func(t *testing.T, set *Set, err error) {
				var validationErr *sensorctlerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Contains(t, validationErr.Field, "tenant_id")
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			set, err := Load(writeProfileFile(t, tc.contents))
			tc.assert(t, set, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	var parseErr *sensorctlerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestDefaultsCoverAllServices(t *testing.T) {
	t.Parallel()

	set := Defaults()
	for _, service := range []string{ServiceAgent, ServiceAnalytics, ServiceOrchestrator, ServiceGateway} {
		p, err := set.Get(service)
		require.NoError(t, err)
		require.NotEmpty(t, p.BaseURL())
	}

	_, err := set.Get("unknown")
	require.Error(t, err)
}
