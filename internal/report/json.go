package report

import (
	"encoding/json"

	"github.com/plalonde/sensorctl/internal/bulk"
	"github.com/plalonde/sensorctl/internal/verify"
)

type jsonVerdict struct {
	Key      string `json:"key"`
	Required string `json:"required"`
	Observed string `json:"observed,omitempty"`
	Status   string `json:"status"`
}

type jsonVerifySummary struct {
	Spec     string        `json:"spec"`
	Total    int           `json:"total"`
	Pass     int           `json:"pass"`
	Fail     int           `json:"fail"`
	Missing  int           `json:"missing"`
	Duration float64       `json:"duration_seconds"`
	Verdicts []jsonVerdict `json:"verdicts"`
}

// VerifyJSON renders a verification summary as indented JSON.
func (w *Writer) VerifyJSON(s *verify.Summary) error {
	out := jsonVerifySummary{
		Spec:     s.Spec,
		Total:    len(s.Verdicts),
		Pass:     s.Pass,
		Fail:     s.Fail,
		Missing:  s.Missing,
		Duration: s.Duration.Seconds(),
		Verdicts: make([]jsonVerdict, len(s.Verdicts)),
	}
	for i, v := range s.Verdicts {
		out.Verdicts[i] = jsonVerdict{
			Key:      v.Key,
			Required: v.Required,
			Observed: v.Observed,
			Status:   string(v.Status),
		}
	}

	encoder := json.NewEncoder(w.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

type jsonOutcome struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Version int    `json:"version"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

type jsonBulkResult struct {
	Total    int           `json:"total"`
	Deleted  int           `json:"deleted"`
	Skipped  int           `json:"skipped"`
	Failed   int           `json:"failed"`
	Duration float64       `json:"duration_seconds"`
	Outcomes []jsonOutcome `json:"outcomes"`
}

// BulkJSON renders a bulk result as indented JSON.
func (w *Writer) BulkJSON(r *bulk.Result) error {
	out := jsonBulkResult{
		Total:    r.Total,
		Deleted:  r.Deleted,
		Skipped:  r.Skipped,
		Failed:   r.Failed,
		Duration: r.Duration.Seconds(),
		Outcomes: make([]jsonOutcome, len(r.Outcomes)),
	}
	for i, o := range r.Outcomes {
		entry := jsonOutcome{
			ID:      o.Ref.ID,
			Kind:    string(o.Ref.Kind),
			Version: o.Ref.Version,
			Status:  string(o.Status),
		}
		if o.Err != nil {
			entry.Error = o.Err.Error()
		}
		out.Outcomes[i] = entry
	}

	encoder := json.NewEncoder(w.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// RawJSON re-indents an API payload for display.
func (w *Writer) RawJSON(payload []byte) error {
	var value any
	if err := json.Unmarshal(payload, &value); err != nil {
		// not JSON; emit as-is
		_, werr := w.out.Write(payload)
		return werr
	}
	encoder := json.NewEncoder(w.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
