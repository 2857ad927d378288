package securetime

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExtractor_Observe_UpdatesClock(t *testing.T) {
	clock := NewClock()
	e := NewExtractor(clock)

	h := http.Header{}
	h.Set("Date", "Wed, 01 Jan 2020 00:00:00 GMT")
	e.Observe(h)

	require.Equal(t, int64(1577836800000), clock.Timestamp())
	got, ok := clock.Time()
	require.True(t, ok)
	require.True(t, got.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestExtractor_Observe_LatestWins(t *testing.T) {
	clock := NewClock()
	e := NewExtractor(clock)

	h := http.Header{}
	h.Set("Date", "Thu, 02 Jan 2020 00:00:00 GMT")
	e.Observe(h)
	h.Set("Date", "Wed, 01 Jan 2020 00:00:00 GMT")
	e.Observe(h)

	require.Equal(t, int64(1577836800000), clock.Timestamp())
}

func TestExtractor_Observe_MissingOrMalformedKeepsPrevious(t *testing.T) {
	cases := []struct {
		name   string
		header http.Header
	}{
		{name: "missing", header: http.Header{}},
		{name: "malformed", header: http.Header{"Date": []string{"yesterday at noon"}}},
		{name: "iso format", header: http.Header{"Date": []string{"2020-01-02T00:00:00Z"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clock := NewClock()
			clock.SetTimestamp(42)

			NewExtractor(clock).Observe(tc.header)

			require.Equal(t, int64(42), clock.Timestamp())
		})
	}
}

func TestClock_TimeBeforeFirstObservation(t *testing.T) {
	_, ok := NewClock().Time()
	require.False(t, ok)
}

func TestParseDate_HTTPDateForms(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "rfc1123", raw: "Wed, 01 Jan 2020 00:00:00 GMT"},
		{name: "rfc850", raw: "Wednesday, 01-Jan-20 00:00:00 GMT"},
		{name: "asctime", raw: "Wed Jan  1 00:00:00 2020"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts, ok := ParseDate(tc.raw)
			require.True(t, ok)
			require.Equal(t, int64(1577836800000), ts)
		})
	}
}

func TestParseDate_GMTIndependentOfLocalZone(t *testing.T) {
	prev := time.Local
	time.Local = time.FixedZone("GMT", 3*60*60)
	t.Cleanup(func() { time.Local = prev })

	ts, ok := ParseDate("Wed, 01 Jan 2020 00:00:00 GMT")
	require.True(t, ok)
	require.Equal(t, int64(1577836800000), ts)
}
