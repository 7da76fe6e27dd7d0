package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"iwms-dashboard/internal/common/boundary"
)

func TestRecorder_RecordOutcome(t *testing.T) {
	r := NewRecorder()
	before := testutil.ToFloat64(OperationCalls.WithLabelValues("leases.list", "simple"))

	r.RecordOutcome("leases.list", "simple", 20*time.Millisecond)
	r.RecordOutcome("leases.list", "ok", 10*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(OperationCalls.WithLabelValues("leases.list", "simple")))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(OperationDuration), 1)
}

func TestRecorder_RecordTransition(t *testing.T) {
	r := NewRecorder()

	r.RecordTransition("maintenance", boundary.Errored)
	assert.Equal(t, 1.0, testutil.ToFloat64(BoundaryErrored.WithLabelValues("maintenance")))

	r.RecordTransition("maintenance", boundary.Clean)
	assert.Equal(t, 0.0, testutil.ToFloat64(BoundaryErrored.WithLabelValues("maintenance")))
	assert.Equal(t, 1.0, testutil.ToFloat64(BoundaryTransitions.WithLabelValues("maintenance", "clean")))
}
