package common

// Clock reports monotonic simulation seconds.
type Clock interface {
	Now() float64
}

// SimClock is a fixed-step clock advanced by the game loop.
type SimClock struct {
	now   float64
	ticks uint64
}

func NewSimClock() *SimClock {
	return &SimClock{}
}

func (c *SimClock) Now() float64 {
	if c == nil {
		return 0
	}
	return c.now
}

func (c *SimClock) Ticks() uint64 {
	if c == nil {
		return 0
	}
	return c.ticks
}

// Advance moves the clock forward. Negative steps are ignored so time never
// runs backwards.
func (c *SimClock) Advance(dt float64) float64 {
	if c == nil {
		return 0
	}
	if dt > 0 {
		c.now += dt
	}
	c.ticks++
	return c.now
}
