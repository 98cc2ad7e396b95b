package lifecycle

import (
	"sync"
	"sync/atomic"
)

// StopFlag is a one-way stop request. Once set it stays set.
type StopFlag struct {
	requested atomic.Bool
	once      sync.Once
	done      chan struct{}
}

// NewStopFlag creates an unset flag
func NewStopFlag() *StopFlag {
	return &StopFlag{done: make(chan struct{})}
}

// Request sets the flag and wakes anything waiting on Done
func (f *StopFlag) Request() {
	f.requested.Store(true)
	f.once.Do(func() { close(f.done) })
}

// StopRequested reports whether Request was called
func (f *StopFlag) StopRequested() bool {
	return f.requested.Load()
}

// Done is closed by the first Request
func (f *StopFlag) Done() <-chan struct{} {
	return f.done
}
