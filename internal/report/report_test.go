package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/plalonde/sensorctl/internal/bulk"
	"github.com/plalonde/sensorctl/internal/resource"
	"github.com/plalonde/sensorctl/internal/verify"
	sensorctlerrors "github.com/plalonde/sensorctl/pkg/errors"
)

func sampleSummary() *verify.Summary {
	return &verify.Summary{
		Spec:  "metadata-categories",
		Title: "Metadata Category Verification",
		Verdicts: []verify.Verdict{
			{Key: "region", Required: "active", Observed: "active", Status: verify.StatusPass},
			{Key: "site", Required: "active", Status: verify.StatusMissing},
		},
		Pass:     1,
		Missing:  1,
		Duration: 42 * time.Millisecond,
	}
}

func sampleResult() *bulk.Result {
	r := &bulk.Result{
		Total:   2,
		Deleted: 1,
		Failed:  1,
		Outcomes: []bulk.Outcome{
			{Ref: resource.NewRef("session-1", resource.KindSession, 3, "/x/session-1"), Status: bulk.StatusDeleted},
			{
				Ref:    resource.NewRef("session-2", resource.KindSession, 3, "/x/session-2"),
				Status: bulk.StatusFailed,
				Err:    sensorctlerrors.NewResourceError(sensorctlerrors.KindServerError, 500, "DELETE", "/x/session-2", nil),
			},
		},
	}
	return r
}

func TestVerifySummaryTable(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	NewWriter(buf).VerifySummary(sampleSummary())

	out := buf.String()
	require.Contains(t, out, "Metadata Category Verification")
	require.Contains(t, out, "region")
	require.Contains(t, out, "missing")
	require.Contains(t, out, "Total: 2")
	require.Contains(t, out, "FAIL")
}

func TestVerifyJSON(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	require.NoError(t, NewWriter(buf).VerifyJSON(sampleSummary()))

	var decoded struct {
		Spec     string `json:"spec"`
		Total    int    `json:"total"`
		Missing  int    `json:"missing"`
		Verdicts []struct {
			Key    string `json:"key"`
			Status string `json:"status"`
		} `json:"verdicts"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "metadata-categories", decoded.Spec)
	require.Equal(t, 2, decoded.Total)
	require.Equal(t, 1, decoded.Missing)
	require.Len(t, decoded.Verdicts, 2)
	require.Equal(t, "pass", decoded.Verdicts[0].Status)
	require.Equal(t, "missing", decoded.Verdicts[1].Status)
}

func TestBulkResultTable(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	NewWriter(buf).BulkResult("Session Deletion", sampleResult())

	out := buf.String()
	require.Contains(t, out, "Session Deletion")
	require.Contains(t, out, "session-1")
	require.Contains(t, out, "session-2")
	require.Contains(t, out, "Total: 2")
	require.Contains(t, out, "1 target(s) failed")
}

func TestBulkJSON(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	require.NoError(t, NewWriter(buf).BulkJSON(sampleResult()))

	var decoded struct {
		Total    int `json:"total"`
		Outcomes []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"outcomes"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, 2, decoded.Total)
	require.Equal(t, "deleted", decoded.Outcomes[0].Status)
	require.Equal(t, "failed", decoded.Outcomes[1].Status)
	require.NotEmpty(t, decoded.Outcomes[1].Error)
}

func TestRawJSONReindents(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	require.NoError(t, NewWriter(buf).RawJSON([]byte(`{"a":1}`)))
	require.Contains(t, buf.String(), "\"a\": 1")
}

func TestTableAlignsColumns(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	NewWriter(buf).Table("Agents", []string{"ID", "Status"}, [][]string{
		{"agent-1", "connected"},
		{"agent-22", "down"},
	})

	out := buf.String()
	require.Contains(t, out, "Agents")
	require.Contains(t, out, "agent-22")
	require.Contains(t, out, "Status")
}
