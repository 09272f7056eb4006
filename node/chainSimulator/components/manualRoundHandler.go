package components

import (
	"sync/atomic"
	"time"
)

type manualRoundHandler struct {
	index         int64
	genesisTime   time.Time
	roundDuration time.Duration
}

// NewManualRoundHandler returns a round handler advanced only by explicit calls. Timestamps are derived from the
// genesis time and the round duration.
func NewManualRoundHandler(genesisTime time.Time, roundDuration time.Duration) *manualRoundHandler {
	return &manualRoundHandler{
		genesisTime:   genesisTime,
		roundDuration: roundDuration,
	}
}

// IncrementIndex will increment the current round index
func (handler *manualRoundHandler) IncrementIndex() {
	atomic.AddInt64(&handler.index, 1)
}

// Index returns the current index
func (handler *manualRoundHandler) Index() int64 {
	return atomic.LoadInt64(&handler.index)
}

// TimeStamp returns the start time of the current round
func (handler *manualRoundHandler) TimeStamp() time.Time {
	return handler.genesisTime.Add(time.Duration(handler.Index()) * handler.roundDuration)
}

// IsInterfaceNil returns true if there is no value under the interface
func (handler *manualRoundHandler) IsInterfaceNil() bool {
	return handler == nil
}
