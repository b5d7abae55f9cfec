package game

import "time"

// MoveLimiter admits at most one move per delay of accumulated frame time,
// so a held key walks at a steady pace.
type MoveLimiter struct {
	delay   time.Duration
	elapsed time.Duration
}

// NewMoveLimiter creates a limiter that becomes ready after delay.
func NewMoveLimiter(delay time.Duration) *MoveLimiter {
	return &MoveLimiter{delay: delay}
}

// Tick adds a frame delta.
func (l *MoveLimiter) Tick(dt time.Duration) {
	l.elapsed += dt
}

// Ready reports whether a move may be taken now.
func (l *MoveLimiter) Ready() bool {
	return l.elapsed >= l.delay
}

// Take consumes the readiness and restarts the interval. It returns false
// without side effects when not ready.
func (l *MoveLimiter) Take() bool {
	if !l.Ready() {
		return false
	}
	l.elapsed = 0
	return true
}

// Reset restarts the interval.
func (l *MoveLimiter) Reset() {
	l.elapsed = 0
}
