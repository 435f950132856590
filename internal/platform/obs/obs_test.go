package obs

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", RequestID(ctx))
	assert.Equal(t, "", RequestID(context.Background()))
}

func TestCountOracleCall(t *testing.T) {
	before := testutil.ToFloat64(oracleCalls.WithLabelValues(CallRoute, "error"))
	CountOracleCall(CallRoute, errors.New("boom"))
	after := testutil.ToFloat64(oracleCalls.WithLabelValues(CallRoute, "error"))
	assert.Equal(t, before+1, after)
}

func TestTimeRecordsOutcome(t *testing.T) {
	err := errors.New("failed")
	Time(context.Background(), "test.op")(&err)
	Time(context.Background(), "test.op")(nil)

	// one series per outcome
	assert.GreaterOrEqual(t, testutil.CollectAndCount(opDuration, "visit_route_op_duration_seconds"), 2)
}
