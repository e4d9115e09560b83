// Package windrose aggregates wind samples into the stacked polar column
// payload of the wind rose page.
package windrose

import (
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/openwx/wxcharts/config"
	"github.com/openwx/wxcharts/utils/numbers"
)

// Configuration paths of the wind rose options.
const (
	PathSource        = "windrose.source"
	PathPetals        = "windrose.petals"
	PathPrecision     = "windrose.precision"
	PathBullseyeSize  = "windrose.bullseyesize"
	PathBullseyeColor = "windrose.bullseyecolor"
	PathCalmLimit     = "windrose.calmlimit"
	PathBandPercent   = "windrose.bandpercent"
	PathLegendTitle   = "windrose.legendtitle"
	PathPetalColors   = "windrose.petalcolors"

	bands = 7
)

// compass labels per petal count
var directionSets = map[int][]string{
	16: {"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
		"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"},
	8: {"N", "NE", "E", "SE", "S", "SW", "W", "NW"},
	4: {"N", "E", "S", "W"},
}

var defaultPetalColors = []string{
	"lightblue", "blue", "midnightblue",
	"forestgreen", "limegreen", "green", "greenyellow",
}

// speed band boundaries as fractions of the rounded maximum speed
var speedFactor = [bands]float64{0.0, 0.1, 0.2, 0.3, 0.5, 0.7, 1.0}

// Options controls how samples are binned and labelled.
type Options struct {
	Source        string // windSpeed or windGust
	Petals        int    // 4, 8 or 16
	Precision     int    // decimal places of the percentages
	BullseyeSize  float64
	BullseyeColor string
	CalmLimit     float64
	BandPercent   bool
	LegendTitle   bool
	PetalColors   []string
	Title         string
}

var (
	current Options
	cm      sync.RWMutex
)

func init() {
	config.OnInitialize(loadOptions)
}

func loadOptions() {
	v := config.Viper

	o := Options{
		Source:        v.GetString(PathSource),
		Petals:        v.GetInt(PathPetals),
		Precision:     1,
		BullseyeSize:  3,
		BullseyeColor: v.GetString(PathBullseyeColor),
		CalmLimit:     0.1,
		BandPercent:   true,
		LegendTitle:   true,
		PetalColors:   v.GetStringSlice(PathPetalColors),
		Title:         "Wind Rose",
	}
	if o.Source != "windGust" {
		o.Source = "windSpeed"
	}
	if _, ok := directionSets[o.Petals]; !ok {
		o.Petals = 16
	}
	if v.IsSet(PathPrecision) {
		o.Precision = v.GetInt(PathPrecision)
	}
	if v.IsSet(PathBullseyeSize) {
		o.BullseyeSize = v.GetFloat64(PathBullseyeSize)
	}
	if o.BullseyeColor == "" {
		o.BullseyeColor = "white"
	}
	if v.IsSet(PathCalmLimit) {
		o.CalmLimit = v.GetFloat64(PathCalmLimit)
	}
	if v.IsSet(PathBandPercent) {
		o.BandPercent = v.GetBool(PathBandPercent)
	}
	if v.IsSet(PathLegendTitle) {
		o.LegendTitle = v.GetBool(PathLegendTitle)
	}
	if len(o.PetalColors) != bands {
		o.PetalColors = defaultPetalColors
	}

	cm.Lock()
	current = o
	cm.Unlock()
}

// CurrentOptions returns the configured wind rose options.
func CurrentOptions() Options {
	cm.RLock()
	defer cm.RUnlock()
	if current.Petals == 0 {
		return Options{
			Source: "windSpeed", Petals: 16, Precision: 1,
			BullseyeSize: 3, BullseyeColor: "white", CalmLimit: 0.1,
			BandPercent: true, LegendTitle: true,
			PetalColors: defaultPetalColors, Title: "Wind Rose",
		}
	}
	return current
}

// BandSeries is one stacked column series, one percentage per petal.
type BandSeries struct {
	Name string    `json:"name"`
	Data []float64 `json:"data"`
}

// RoseAxis carries the polar y-axis bounds. Min is negative to leave room
// for the bullseye.
type RoseAxis struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Bullseye is the centre disc collecting calm and direction-less samples.
type Bullseye struct {
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
	Text   string  `json:"text"`
}

// Rose is the wind rose payload of one period.
type Rose struct {
	Title       string       `json:"title"`
	Units       string       `json:"units"`
	Directions  []string     `json:"xAxisCategories"`
	Series      []BandSeries `json:"series"`
	Colors      []string     `json:"colors"`
	YAxis       RoseAxis     `json:"yAxis"`
	LegendTitle string       `json:"legendTitle,omitempty"`
	Bullseye    Bullseye     `json:"bullseye"`
}

// Calculate bins wind samples into per-direction speed band percentages.
// speed and dir are parallel vectors; unitLabel is the display unit of the
// speed values. Samples without a direction, or at or below the calm
// limit, count toward the bullseye instead of a petal.
func Calculate(speed, dir []*float64, unitLabel string, o Options) *Rose {
	directions := directionSets[o.Petals]
	sector := 360.0 / float64(o.Petals)

	maxSpeed := 0.0
	for _, s := range speed {
		if s != nil && *s > maxSpeed {
			maxSpeed = *s
		}
	}
	// round the band ceiling up to the next multiple of 10
	maxSpeedRange := (math.Floor(maxSpeed/10.0) + 1) * 10.0
	var cutoffs [bands]float64
	for i := 1; i < bands; i++ {
		cutoffs[i] = speedFactor[i] * maxSpeedRange
	}

	// windBin[band][petal] sample counts; calm counts directionless
	windBin := make([][]int, bands)
	for i := range windBin {
		windBin[i] = make([]int, o.Petals)
	}
	calm := 0

	samples := len(speed)
	for i := 0; i < samples; i++ {
		s, d := speed[i], dir[i]
		if s == nil || d == nil || math.IsNaN(*s) || math.IsNaN(*d) || *s <= o.CalmLimit {
			calm++
			continue
		}
		petal := int((compass(*d)+sector/2.0)/sector) % o.Petals
		band := 1
		for band < bands-1 && *s > cutoffs[band] {
			band++
		}
		windBin[band][petal]++
	}

	pcent := 0.0
	if samples > 0 {
		pcent = 100.0 / float64(samples)
	}

	// percentage per petal across all bands, for axis scaling
	maxDirPercent := 0.0
	for p := 0; p < o.Petals; p++ {
		total := 0
		for b := 0; b < bands; b++ {
			total += windBin[b][p]
		}
		if v := numbers.RoundPlaces(pcent*float64(total), o.Precision); v > maxDirPercent {
			maxDirPercent = v
		}
	}
	maxY := 10.0 * (1.0 + math.Floor(maxDirPercent/10.0))
	bullseyeRadius := maxY * o.BullseyeSize / 100.0

	calmPercent := strconv.FormatFloat(numbers.RoundPlaces(pcent*float64(calm), o.Precision), 'f', -1, 64) + "%"

	// series run highest band first so stacking draws fastest winds
	// innermost
	series := make([]BandSeries, 0, bands-1)
	for b := bands - 1; b >= 1; b-- {
		data := make([]float64, o.Petals)
		count := 0
		for p := 0; p < o.Petals; p++ {
			count += windBin[b][p]
			data[p] = numbers.RoundPlaces(pcent*float64(windBin[b][p]), o.Precision)
		}
		series = append(series, BandSeries{
			Name: bandLabel(cutoffs[b-1], cutoffs[b], unitLabel, pcent*float64(count), o),
			Data: data,
		})
	}

	r := &Rose{
		Title:      o.Title,
		Units:      unitLabel,
		Directions: directions,
		Series:     series,
		Colors:     o.PetalColors,
		YAxis:      RoseAxis{Min: -bullseyeRadius, Max: maxY},
		Bullseye: Bullseye{
			Radius: bullseyeRadius,
			Color:  o.BullseyeColor,
			Text:   calmLabel(calmPercent, o),
		},
	}
	if o.LegendTitle {
		if o.Source == "windGust" {
			r.LegendTitle = "Wind Gust"
		} else {
			r.LegendTitle = "Wind Speed"
		}
	}
	return r
}

func bandLabel(lo, hi float64, unitLabel string, percent float64, o Options) string {
	label := fmt.Sprintf("%d-%d", int(math.Round(lo)), int(math.Round(hi)))
	if unitLabel != "" {
		label += " " + unitLabel
	}
	if o.BandPercent {
		p := strconv.FormatFloat(numbers.RoundPlaces(percent, o.Precision), 'f', -1, 64)
		label += " (" + p + "%)"
	}
	return label
}

// compass normalizes a direction into [0, 360). The archive column is an
// unconstrained REAL, so out-of-range samples do reach this code.
func compass(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func calmLabel(percent string, o Options) string {
	if o.BandPercent {
		return "Calm (" + percent + ")"
	}
	return "Calm"
}
