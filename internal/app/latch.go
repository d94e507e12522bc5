package app

import (
	"sync"
	"sync/atomic"
)

// Latch is a one-shot quit signal. It moves from unset to set exactly once
// and never resets. Any number of goroutines may wait on or test it.
type Latch struct {
	once sync.Once
	set  atomic.Bool
	done chan struct{}
}

// NewLatch creates an unset latch.
func NewLatch() *Latch {
	return &Latch{done: make(chan struct{})}
}

// Set signals the latch. It reports whether this call was the one that set it.
func (l *Latch) Set() bool {
	first := false
	l.once.Do(func() {
		l.set.Store(true)
		close(l.done)
		first = true
	})
	return first
}

// IsSet reports whether the latch has been set.
func (l *Latch) IsSet() bool {
	return l.set.Load()
}

// Done returns a channel that is closed once the latch is set.
func (l *Latch) Done() <-chan struct{} {
	return l.done
}

// Wait blocks until the latch is set.
func (l *Latch) Wait() {
	<-l.done
}
