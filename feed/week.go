package feed

import (
	"context"
	"time"

	"github.com/openwx/wxcharts/archive"
	"github.com/openwx/wxcharts/units"
	"github.com/openwx/wxcharts/utils/numbers"
	"github.com/openwx/wxcharts/utils/timespan"
)

// primary observation type per category; its unit group and min-range
// configuration label the whole plot
var primaryObs = map[Category]string{
	CategoryTemperature: "outTemp",
	CategoryWindchill:   "windchill",
	CategoryHumidity:    "outHumidity",
	CategoryBarometer:   "barometer",
	CategoryWind:        "windSpeed",
	CategoryWindDir:     "windDir",
	CategoryRain:        "rain",
	CategoryRadiation:   "radiation",
	CategoryUV:          "UV",
}

// BuildWeek assembles the week-window feed document from raw archive
// series. The window covers the seven days up to now, starting on a
// start-of-day boundary. Optional series (appTemp, insolation) are left
// out entirely when the archive holds no data for them.
func BuildWeek(ctx context.Context, a *archive.Archive, now time.Time) (*Document, error) {
	span := timespan.Week(now)

	doc := &Document{
		UTCOffset: timespan.UTCOffset(now),
		Timespan:  Timespan{Start: span.StartMillis(), Stop: span.StopMillis()},
	}

	hasAppTemp := a.HasData(ctx, "appTemp", span)
	hasInsolation := a.HasData(ctx, "insolation", span)

	var err error
	if doc.Temperature, err = weekPlot(ctx, a, span, CategoryTemperature,
		"outTemp", "dewpoint", optional("appTemp", hasAppTemp)); err != nil {
		return nil, err
	}
	if doc.Windchill, err = weekPlot(ctx, a, span, CategoryWindchill,
		"windchill", "heatindex", optional("appTemp", hasAppTemp)); err != nil {
		return nil, err
	}
	if doc.Humidity, err = weekPlot(ctx, a, span, CategoryHumidity, "outHumidity"); err != nil {
		return nil, err
	}
	if doc.Barometer, err = weekPlot(ctx, a, span, CategoryBarometer, "barometer"); err != nil {
		return nil, err
	}
	if doc.Wind, err = weekPlot(ctx, a, span, CategoryWind, "windSpeed", "windGust"); err != nil {
		return nil, err
	}
	if doc.WindDir, err = weekPlot(ctx, a, span, CategoryWindDir, "windDir"); err != nil {
		return nil, err
	}
	if doc.Radiation, err = weekPlot(ctx, a, span, CategoryRadiation,
		"radiation", optional("insolation", hasInsolation)); err != nil {
		return nil, err
	}
	if doc.UV, err = weekPlot(ctx, a, span, CategoryUV, "UV"); err != nil {
		return nil, err
	}

	// rain is summed per hour; the aggregation places each point on its
	// hour-boundary stop, so a partial last hour cannot misalign columns
	rain, err := a.SeriesAggregated(ctx, "rain", span, "sum", time.Hour)
	if err != nil {
		return nil, err
	}
	doc.Rain = newPlot(CategoryRain)
	doc.Rain.Series["rain"] = toSeries(rain, units.Decimals("rain"))

	return doc, nil
}

// optional marks an observation type to be skipped when the archive holds
// no data for it.
func optional(obsType string, present bool) string {
	if !present {
		return ""
	}
	return obsType
}

func newPlot(c Category) *Plot {
	obs := primaryObs[c]
	return &Plot{
		Units:    units.ObsLabel(obs),
		MinRange: units.MinRange(obs),
		Series:   make(map[string]*Series),
	}
}

func weekPlot(ctx context.Context, a *archive.Archive, span timespan.Span, c Category, obsTypes ...string) (*Plot, error) {
	plot := newPlot(c)
	for _, obsType := range obsTypes {
		if obsType == "" {
			continue
		}
		points, err := a.Series(ctx, obsType, span)
		if err != nil {
			return nil, err
		}
		plot.Series[obsType] = toSeries(points, units.Decimals(obsType))
	}
	return plot, nil
}

// toSeries converts archive samples to chart points: timestamps move to
// epoch milliseconds, values are rounded to the unit group's decimals.
func toSeries(points []archive.Point, decimals int) *Series {
	s := &Series{Data: make([]Point, len(points))}
	for i, p := range points {
		s.Data[i] = Point{
			Time:  p.Time * 1000,
			Value: numbers.RoundNone(p.Value, decimals),
		}
	}
	return s
}
