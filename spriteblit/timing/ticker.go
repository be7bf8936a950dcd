package timing

import "time"

// TickerLimiter uses time.Ticker for simple, consistent frame timing.
// Less accurate than AdaptiveLimiter but simpler and good enough for most cases.
type TickerLimiter struct {
	ticker   *time.Ticker
	ch       <-chan time.Time
	duration time.Duration
}

func NewTickerLimiter(fps float64) *TickerLimiter {
	ticker := time.NewTicker(FrameDuration(fps))
	return &TickerLimiter{
		ticker:   ticker,
		ch:       ticker.C,
		duration: FrameDuration(fps),
	}
}

func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ch
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(t.duration)
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}
