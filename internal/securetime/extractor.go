package securetime

import (
	"net/http"
	"ratefeed/internal/adapters"

	"github.com/sirupsen/logrus"
)

const dateHeader = "Date"

// Extractor feeds the trusted clock from response Date headers.
type Extractor struct {
	clock adapters.TrustedClock
}

func NewExtractor(clock adapters.TrustedClock) *Extractor {
	return &Extractor{clock: clock}
}

// Observe updates the clock from the Date header. A missing or malformed
// header leaves the clock untouched.
func (e *Extractor) Observe(header http.Header) {
	raw := header.Get(dateHeader)
	if raw == "" {
		logrus.Debug("Response has no Date header, trusted time not updated")
		return
	}

	ts, ok := ParseDate(raw)
	if !ok {
		logrus.WithField("date", raw).Warn("Failed to parse Date header, trusted time not updated")
		return
	}
	e.clock.SetTimestamp(ts)
}

// ParseDate parses an HTTP date (RFC 1123, RFC 850 or asctime, always GMT)
// into epoch milliseconds.
func ParseDate(raw string) (int64, bool) {
	t, err := http.ParseTime(raw)
	if err != nil {
		return 0, false
	}
	return t.UnixMilli(), true
}
