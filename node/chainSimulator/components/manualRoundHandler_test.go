package components

import (
	"testing"
	"time"

	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/stretchr/testify/require"
)

func TestManualRoundHandler(t *testing.T) {
	t.Parallel()

	genesis := time.Unix(1700000000, 0)
	handler := NewManualRoundHandler(genesis, 6*time.Second)
	require.False(t, check.IfNil(handler))
	require.Equal(t, int64(0), handler.Index())
	require.Equal(t, genesis, handler.TimeStamp())

	handler.IncrementIndex()
	handler.IncrementIndex()
	require.Equal(t, int64(2), handler.Index())
	require.Equal(t, genesis.Add(12*time.Second), handler.TimeStamp())
}
