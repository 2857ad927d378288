package securetime

import (
	"sync/atomic"
	"time"
)

// Clock holds the most recently observed server time in epoch milliseconds.
// Writes are last-write-wins; zero means nothing has been observed yet.
type Clock struct {
	millis atomic.Int64
}

func NewClock() *Clock {
	return &Clock{}
}

func (c *Clock) SetTimestamp(millis int64) {
	c.millis.Store(millis)
}

func (c *Clock) Timestamp() int64 {
	return c.millis.Load()
}

// Time returns the trusted time and whether one was observed.
func (c *Clock) Time() (time.Time, bool) {
	ms := c.Timestamp()
	if ms == 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}
