package ledger

import (
	"context"
	"math"
	"testing"

	"defilend/core"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionCounter(t *testing.T) {
	ctx := context.Background()
	s, _ := initializedService(t, 0)

	ok := actionCounter.WithLabelValues("supply", "ok")
	overflow := actionCounter.WithLabelValues("supply", core.ErrOverflow.String())
	okBefore, overflowBefore := testutil.ToFloat64(ok), testutil.ToFloat64(overflow)

	_, err := s.Supply(ctx, req("alice", 10))
	require.NoError(t, err)

	_, err = s.Supply(ctx, req("alice", math.MaxUint64))
	assert.Equal(t, core.ErrOverflow, err)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, overflowBefore+1, testutil.ToFloat64(overflow))
}
