package queue

// signal is a broadcast-only condition variable backed by a channel, so a
// waiter can select on it together with a timer. Every method must be
// called with the queue mutex held.
type signal struct {
	ch      chan struct{}
	waiters int
}

func newSignal() signal {
	return signal{ch: make(chan struct{})}
}

// wait registers a waiter and returns the channel closed by the next broadcast
func (s *signal) wait() <-chan struct{} {
	s.waiters++
	return s.ch
}

// broadcast wakes every registered waiter
func (s *signal) broadcast() {
	if s.waiters == 0 {
		return
	}
	close(s.ch)
	s.ch = make(chan struct{})
	s.waiters = 0
}
