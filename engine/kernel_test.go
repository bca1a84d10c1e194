package engine

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParallelKernel(t *testing.T) {
	_, err := NewParallelKernel(-1)
	assert.ErrorIs(t, err, ErrEnvironmentUnavailable)

	k, err := NewParallelKernel(0)
	require.NoError(t, err)
	assert.Positive(t, k.Workers())
}

func TestParallelKernel_CoversEveryIndexOnce(t *testing.T) {
	for _, n := range []int{0, 1, 63, 64, 65, 1000, 4097} {
		k, err := NewParallelKernel(4)
		require.NoError(t, err)

		hits := make([]atomic.Int32, n)
		err = k.Dispatch(context.Background(), n, func(lo, hi int) error {
			for i := lo; i < hi; i++ {
				hits[i].Add(1)
			}
			return nil
		})
		require.NoError(t, err)
		for i := range hits {
			require.Equal(t, int32(1), hits[i].Load(), "n=%d index %d", n, i)
		}
	}
}

func TestParallelKernel_PanicBecomesError(t *testing.T) {
	k, err := NewParallelKernel(4)
	require.NoError(t, err)

	err = k.Dispatch(context.Background(), 1000, func(lo, hi int) error {
		if lo == 0 {
			panic("bad agent")
		}
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad agent")
}
