// Package api holds the path layout and listing document shapes of the
// managed orchestrator APIs. Paths are data: bulk targets carry their delete
// endpoint, selected by surface version at enumeration time.
package api

// Agent orchestrator surface (v3).
const (
	AgentsBase          = "/api/orchestrate/v3/agents"
	SessionsPath        = AgentsBase + "/sessions"
	SessionStatusesPath = AgentsBase + "/sessionstatuses"
)

// SessionPath addresses one session.
func SessionPath(id string) string {
	return AgentsBase + "/session/" + id
}

// SessionStatusPath addresses one session's status.
func SessionStatusPath(id string) string {
	return AgentsBase + "/sessionstatus/" + id
}

// AgentPath addresses one agent.
func AgentPath(id string) string {
	return AgentsBase + "/" + id
}

// AgentConfigPath addresses one agent's configuration.
func AgentConfigPath(id string) string {
	return AgentsBase + "/configuration/" + id
}

// Analytics surface. Alerting policies exist on both v2 and v3.
const (
	PoliciesV2Path        = "/api/v2/policies/alerting"
	PoliciesV3Path        = "/api/v3/policies/alerting"
	MonitoredObjectsPath  = "/api/v2/monitored-objects"
	MetadataMappingPath   = "/api/v2/metadata-category-mappings/activeMetrics"
	IngestionProfilesPath = "/api/v2/ingestion-profiles"
)

// PolicyV2Path addresses one alerting policy on the v2 surface.
func PolicyV2Path(id string) string {
	return PoliciesV2Path + "/" + id
}

// PolicyV3DeletePath addresses one alerting policy on the v3 surface.
// Alerts raised by the policy are dropped alongside it.
func PolicyV3DeletePath(id string) string {
	return PoliciesV3Path + "/" + id + "?ignoreAlerts=true"
}

// PoliciesByTagPath lists policies carrying the given tag.
func PoliciesByTagPath(tag string) string {
	return PoliciesV2Path + "?tag=" + tag
}

// MonitoredObjectPath addresses one monitored object.
func MonitoredObjectPath(id string) string {
	return MonitoredObjectsPath + "/" + id
}

// TenantMetadataPath addresses one tenant's metadata document.
func TenantMetadataPath(tenantID string) string {
	return "/api/v2/tenant-metadata/" + tenantID
}

// Protocol gateway surface (RESTCONF).
const (
	GatewayEndpointsPath      = "/restconf/data/Accedian-service-endpoint:service-endpoints"
	GatewaySessionsPath       = "/restconf/data/Accedian-session:sessions"
	GatewayServicesPath       = "/restconf/data/Accedian-service:services"
	GatewayAlertPoliciesPath  = "/restconf/data/Accedian-alert:alert-policies"
	GatewayMetadataConfigPath = "/restconf/data/Accedian-metadata:metadata-config"
)

// GatewayEndpointPath addresses one service endpoint.
func GatewayEndpointPath(id string) string {
	return GatewayEndpointsPath + "/service-endpoint=" + id
}

// GatewaySessionPath addresses one gateway session.
func GatewaySessionPath(id string) string {
	return GatewaySessionsPath + "/session=" + id
}
