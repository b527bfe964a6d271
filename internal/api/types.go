package api

import (
	"encoding/json"

	"github.com/plalonde/sensorctl/internal/client"
)

// SessionList mirrors the agent orchestrator session listing.
type SessionList struct {
	Data []struct {
		Attributes struct {
			Session struct {
				SessionID string `json:"sessionId"`
			} `json:"session"`
		} `json:"attributes"`
	} `json:"data"`
}

// SessionIDs extracts the session identifiers in listing order.
func (l SessionList) SessionIDs() []string {
	ids := make([]string, 0, len(l.Data))
	for _, item := range l.Data {
		if id := item.Attributes.Session.SessionID; id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// SessionStatusList mirrors the session status listing.
type SessionStatusList struct {
	Data []SessionStatus `json:"data"`
}

// SessionStatus is one session's reported state.
type SessionStatus struct {
	SessionID     string `json:"sessionId"`
	Status        string `json:"status"`
	StatusMessage string `json:"statusMessage"`
}

// AgentList mirrors the agent listing.
type AgentList struct {
	Data []struct {
		ID         string `json:"id"`
		Attributes struct {
			AgentName string `json:"agentName"`
			AgentType string `json:"agentType"`
			Status    string `json:"status"`
			State     string `json:"state"`
		} `json:"attributes"`
	} `json:"data"`
}

// PolicyList mirrors the alerting policy listing, identical on both
// surface versions.
type PolicyList struct {
	Data []struct {
		ID         string `json:"id"`
		Attributes struct {
			Name   string   `json:"name"`
			Status string   `json:"status"`
			Tags   []string `json:"tags"`
		} `json:"attributes"`
	} `json:"data"`
}

// MonitoredObjectList mirrors the monitored object listing.
type MonitoredObjectList struct {
	Data []struct {
		ID         string `json:"id"`
		Type       string `json:"type"`
		Attributes struct {
			Name string `json:"name"`
		} `json:"attributes"`
	} `json:"data"`
}

// EndpointList mirrors the gateway RESTCONF service endpoint listing.
type EndpointList struct {
	Container struct {
		Endpoints []Endpoint `json:"service-endpoint"`
	} `json:"Accedian-service-endpoint:service-endpoints"`
}

// Endpoint is one gateway service endpoint.
type Endpoint struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// TenantMetadata mirrors the tenant metadata document. The raw document is
// kept so updates can patch one attribute and send the rest back untouched.
type TenantMetadata struct {
	Data struct {
		Attributes map[string]any `json:"attributes"`
	} `json:"data"`
}

// Decode unmarshals a payload into out.
func Decode(payload client.Payload, out any) error {
	return json.Unmarshal(payload, out)
}
