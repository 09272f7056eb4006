package chainSimulator

import "time"

// RoundHandler defines the simulated round progression
type RoundHandler interface {
	IncrementIndex()
	Index() int64
	TimeStamp() time.Time
	IsInterfaceNil() bool
}
