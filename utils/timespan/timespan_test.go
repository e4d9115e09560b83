package timespan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	in := time.Date(2021, 3, 14, 17, 42, 13, 0, time.UTC)
	assert.Equal(t, time.Date(2021, 3, 14, 0, 0, 0, 0, time.UTC), StartOfDay(in))
}

func TestWeek(t *testing.T) {
	stop := time.Date(2021, 3, 14, 17, 42, 0, 0, time.UTC)
	s := Week(stop)
	assert.Equal(t, time.Date(2021, 3, 7, 0, 0, 0, 0, time.UTC), s.Start)
	assert.Equal(t, stop, s.Stop)
}

func TestYear(t *testing.T) {
	stop := time.Date(2021, 3, 14, 17, 42, 0, 0, time.UTC)
	s := Year(stop)
	assert.Equal(t, time.Date(2020, 3, 14, 0, 0, 0, 0, time.UTC), s.Start)
}

func TestYearLeapDay(t *testing.T) {
	stop := time.Date(2020, 2, 29, 12, 0, 0, 0, time.UTC)
	s := Year(stop)
	// 2019 has no Feb 29, expect the end of February instead
	assert.Equal(t, time.Date(2019, 2, 28, 0, 0, 0, 0, time.UTC), s.Start)
}

func TestSpanMillis(t *testing.T) {
	s := Span{
		Start: time.UnixMilli(1000),
		Stop:  time.UnixMilli(2000),
	}
	assert.Equal(t, int64(1000), s.StartMillis())
	assert.Equal(t, int64(2000), s.StopMillis())
}

func TestUTCOffset(t *testing.T) {
	assert.Equal(t, 0, UTCOffset(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)))
	loc := time.FixedZone("AEST", 10*3600)
	assert.Equal(t, 36000, UTCOffset(time.Date(2021, 1, 1, 0, 0, 0, 0, loc)))
}
