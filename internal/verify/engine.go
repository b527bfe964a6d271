package verify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/plalonde/sensorctl/internal/client"
	"github.com/plalonde/sensorctl/internal/logger"
	"github.com/plalonde/sensorctl/internal/spec"
	sensorctlerrors "github.com/plalonde/sensorctl/pkg/errors"
)

// Reader is the read-only slice of the resource client the engine needs.
type Reader interface {
	Read(ctx context.Context, path string) (client.Payload, error)
}

// ReaderResolver yields a reader for the service a spec targets.
type ReaderResolver func(service string) (Reader, error)

// Engine cross-checks live configuration against requirement specs.
type Engine struct {
	registry *spec.Registry
	readers  ReaderResolver
	log      *logger.Logger
}

// NewEngine creates a verification engine over the given registry.
func NewEngine(registry *spec.Registry, readers ReaderResolver, log *logger.Logger) *Engine {
	return &Engine{registry: registry, readers: readers, log: log}
}

// Verify resolves the named spec, fetches the relevant live configuration
// once, and judges every required key in declaration order. The fetch is
// all-or-nothing: a failed fetch aborts the whole verification, because a
// partially-fetched configuration cannot be judged safely.
func (e *Engine) Verify(ctx context.Context, specName string) (*Summary, error) {
	start := time.Now()

	s, err := e.registry.Get(specName)
	if err != nil {
		return nil, err
	}

	reader, err := e.readers(s.Service)
	if err != nil {
		return nil, err
	}

	e.log.WithFields(map[string]any{"spec": s.Name, "source": s.Source}).Debug("fetching live configuration")

	payload, err := reader.Read(ctx, s.Source)
	if err != nil {
		return nil, sensorctlerrors.NewVerificationAbortedError(s.Name, err)
	}

	observed, err := extract(s, payload)
	if err != nil {
		return nil, sensorctlerrors.NewVerificationAbortedError(s.Name, err)
	}

	summary := &Summary{
		Spec:     s.Name,
		Title:    s.Title,
		Verdicts: make([]Verdict, 0, len(s.Require)),
	}

	required := s.RequiredValue()
	for _, key := range s.Require {
		v := Verdict{Key: key, Required: required}
		got, ok := observed[key]
		switch {
		case !ok:
			v.Status = StatusMissing
			summary.Missing++
		case got == required:
			v.Observed = got
			v.Status = StatusPass
			summary.Pass++
		default:
			v.Observed = got
			v.Status = StatusFail
			summary.Fail++
		}
		summary.Verdicts = append(summary.Verdicts, v)
	}

	summary.Duration = time.Since(start)
	return summary, nil
}

// categoryMappingDoc mirrors /api/v2/metadata-category-mappings/activeMetrics.
type categoryMappingDoc struct {
	Data struct {
		Attributes struct {
			MetadataCategoryMap map[string]struct {
				Name     string `json:"name"`
				IsActive bool   `json:"isActive"`
			} `json:"metadataCategoryMap"`
		} `json:"attributes"`
	} `json:"data"`
}

// ingestionProfilesDoc mirrors /api/v2/ingestion-profiles.
type ingestionProfilesDoc struct {
	Data []struct {
		Attributes struct {
			Metrics struct {
				VendorMap map[string]struct {
					MonitoredObjectTypeMap map[string]struct {
						MetricMap map[string]bool `json:"metricMap"`
					} `json:"monitoredObjectTypeMap"`
				} `json:"vendorMap"`
			} `json:"metrics"`
		} `json:"attributes"`
	} `json:"data"`
}

func extract(s spec.Spec, payload client.Payload) (map[string]string, error) {
	switch s.Check {
	case spec.CheckEnabledMetrics:
		return extractEnabledMetrics(s, payload)
	default:
		return extractActiveCategories(payload)
	}
}

func extractActiveCategories(payload client.Payload) (map[string]string, error) {
	var doc categoryMappingDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, err
	}

	observed := make(map[string]string, len(doc.Data.Attributes.MetadataCategoryMap))
	for _, category := range doc.Data.Attributes.MetadataCategoryMap {
		if category.Name == "" {
			continue
		}
		if category.IsActive {
			observed[category.Name] = "active"
		} else {
			observed[category.Name] = "inactive"
		}
	}
	return observed, nil
}

func extractEnabledMetrics(s spec.Spec, payload client.Payload) (map[string]string, error) {
	var doc ingestionProfilesDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, err
	}

	observed := make(map[string]string)
	for _, item := range doc.Data {
		vendor, ok := item.Attributes.Metrics.VendorMap[s.Vendor]
		if !ok {
			continue
		}
		objectType, ok := vendor.MonitoredObjectTypeMap[s.ObjectType]
		if !ok {
			continue
		}
		for metric, enabled := range objectType.MetricMap {
			if enabled {
				observed[metric] = "enabled"
			} else if _, seen := observed[metric]; !seen {
				// An earlier profile enabling the metric wins.
				observed[metric] = "disabled"
			}
		}
	}
	return observed, nil
}
