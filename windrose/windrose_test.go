package windrose

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwx/wxcharts/config"
)

func f(v float64) *float64 { return &v }

func testNow() time.Time {
	return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

func testOptions() Options {
	o := CurrentOptions()
	o.Petals = 16
	return o
}

func TestCalculateBinsByDirection(t *testing.T) {
	// three northerly samples at 12, one easterly at 4
	speed := []*float64{f(12), f(12), f(12), f(4)}
	dir := []*float64{f(0), f(355), f(8), f(90)}

	r := Calculate(speed, dir, "km/h", testOptions())

	require.Len(t, r.Directions, 16)
	assert.Equal(t, "N", r.Directions[0])
	require.Len(t, r.Series, 6)

	// max speed 12 rounds the band ceiling to 20; 12 falls in the
	// 10-14 band (factors 0.5..0.7), 4 in the 2-4 band
	north, east := 0, 4
	at12 := findBand(t, r, "10-14")
	at4 := findBand(t, r, "2-4")
	assert.Equal(t, 75.0, at12.Data[north])
	assert.Equal(t, 25.0, at4.Data[east])
}

func findBand(t *testing.T, r *Rose, prefix string) BandSeries {
	t.Helper()
	for _, s := range r.Series {
		if strings.HasPrefix(s.Name, prefix+" ") {
			return s
		}
	}
	t.Fatalf("no band series with prefix %q", prefix)
	return BandSeries{}
}

func TestCalculateCalmAndGaps(t *testing.T) {
	speed := []*float64{f(0.05), nil, f(9), f(9)}
	dir := []*float64{f(180), f(180), nil, f(180)}

	r := Calculate(speed, dir, "km/h", testOptions())

	// calm sample, nil speed and nil direction all land in the bullseye
	assert.Equal(t, "Calm (75%)", r.Bullseye.Text)
	// the one remaining sample: 9 falls in the fastest 7-10 band, due S
	assert.Equal(t, 25.0, r.Series[0].Data[8])
}

func TestCalculateNormalizesDirections(t *testing.T) {
	// out-of-range directions wrap onto the compass instead of panicking
	speed := []*float64{f(5), f(5), f(5)}
	dir := []*float64{f(-180), f(540), f(-90)}

	r := Calculate(speed, dir, "km/h", testOptions())

	// max speed 5 rounds the band ceiling to 10; 5 falls in the 3-5 band
	band := findBand(t, r, "3-5")
	south, west := 8, 12
	assert.Equal(t, 66.7, band.Data[south]) // -180 and 540 both mean due S
	assert.Equal(t, 33.3, band.Data[west])
}

func TestCalculateNaNSamplesAreCalm(t *testing.T) {
	nan := math.NaN()
	speed := []*float64{&nan, f(5)}
	dir := []*float64{f(90), &nan}

	r := Calculate(speed, dir, "km/h", testOptions())
	assert.Equal(t, "Calm (100%)", r.Bullseye.Text)
}

func TestCalculateAxisAndBullseyeScaling(t *testing.T) {
	// all ten samples due north: the N petal holds 100%
	var speed, dir []*float64
	for i := 0; i < 10; i++ {
		speed = append(speed, f(5))
		dir = append(dir, f(0))
	}

	r := Calculate(speed, dir, "km/h", testOptions())

	// 100% rounds the axis up to the next decade
	assert.Equal(t, 110.0, r.YAxis.Max)
	assert.Equal(t, 110.0*3/100, r.Bullseye.Radius)
	assert.Equal(t, -r.Bullseye.Radius, r.YAxis.Min)
}

func TestCalculateSeriesOrderFastestFirst(t *testing.T) {
	r := Calculate([]*float64{f(1)}, []*float64{f(0)}, "km/h", testOptions())

	require.Len(t, r.Series, 6)
	// the first series covers the fastest band, the last the slowest
	assert.Equal(t, "7-10 km/h (0%)", r.Series[0].Name)
	assert.Equal(t, "0-1 km/h (100%)", r.Series[5].Name)
}

func TestCalculateLegendTitlePerSource(t *testing.T) {
	o := testOptions()
	o.Source = "windGust"
	r := Calculate(nil, nil, "km/h", o)
	assert.Equal(t, "Wind Gust", r.LegendTitle)

	o.LegendTitle = false
	r = Calculate(nil, nil, "km/h", o)
	assert.Empty(t, r.LegendTitle)
}

func TestLoadOptionsDefaults(t *testing.T) {
	config.Viper.Set(PathSource, nil)
	config.Viper.Set(PathPetals, nil)
	loadOptions()

	o := CurrentOptions()
	assert.Equal(t, "windSpeed", o.Source)
	assert.Equal(t, 16, o.Petals)
	assert.Equal(t, 1, o.Precision)
	assert.Equal(t, 3.0, o.BullseyeSize)
	assert.Equal(t, defaultPetalColors, o.PetalColors)
}

func TestLoadOptionsRejectsBadValues(t *testing.T) {
	config.Viper.Set(PathSource, "windVane")
	config.Viper.Set(PathPetals, 5)
	defer func() {
		config.Viper.Set(PathSource, nil)
		config.Viper.Set(PathPetals, nil)
		loadOptions()
	}()
	loadOptions()

	o := CurrentOptions()
	assert.Equal(t, "windSpeed", o.Source)
	assert.Equal(t, 16, o.Petals)
}

func TestSpanUnknownPeriod(t *testing.T) {
	_, err := span("fortnight", testNow())
	assert.ErrorIs(t, err, ErrUnknownPeriod)
}
