package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/topocheck/internal/validation"
)

var _ validation.Recorder = (*Metrics)(nil)

func TestRecordValidation(t *testing.T) {
	t.Parallel()
	m := New()

	m.RecordValidation("stack-config-type", true, 0, time.Millisecond)
	m.RecordValidation("stack-config-type", false, 2, time.Millisecond)
	m.RecordValidation("stack-config-type", false, 1, time.Millisecond)

	assert.InDelta(t, 1, testutil.ToFloat64(m.runsTotal.WithLabelValues("stack-config-type", ResultPassed)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.runsTotal.WithLabelValues("stack-config-type", ResultFailed)), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.invalidConfigTypes.WithLabelValues("stack-config-type")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestRecordRequest(t *testing.T) {
	t.Parallel()
	m := New()

	m.RecordRequest(ResultPassed)
	m.RecordRequest(ResultError)
	m.RecordRequest(ResultError)

	assert.InDelta(t, 1, testutil.ToFloat64(m.requestsTotal.WithLabelValues(ResultPassed)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.requestsTotal.WithLabelValues(ResultError)), 0)
}

func TestRegistriesAreIndependent(t *testing.T) {
	t.Parallel()
	a, b := New(), New()

	a.RecordRequest(ResultPassed)

	assert.Equal(t, 1, testutil.CollectAndCount(a.requestsTotal))
	assert.Equal(t, 0, testutil.CollectAndCount(b.requestsTotal))
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()
	m := New()
	m.RecordValidation("stack-config-type", false, 2, 5*time.Millisecond)
	path := filepath.Join(t.TempDir(), "topocheck.prom")

	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `topocheck_validation_runs_total{result="failed",validator="stack-config-type"} 1`)
	assert.Contains(t, string(data), `topocheck_validation_invalid_config_types_total{validator="stack-config-type"} 2`)
	assert.Contains(t, string(data), "topocheck_validation_duration_seconds_bucket")
}

func TestWriteTextfile_BadPath(t *testing.T) {
	t.Parallel()

	err := New().WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write metrics")
}
