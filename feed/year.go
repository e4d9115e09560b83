package feed

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/openwx/wxcharts/archive"
	"github.com/openwx/wxcharts/units"
	"github.com/openwx/wxcharts/utils/numbers"
	"github.com/openwx/wxcharts/utils/timespan"
)

// BuildYear assembles the year-window feed document from the daily summary
// tables. The window covers one year up to now, starting on a start-of-day
// boundary. Categories carry min/max bands plus an average line where the
// summaries provide them; the appTemp series are left out entirely when no
// summary data exists.
func BuildYear(ctx context.Context, a *archive.Archive, now time.Time) (*Document, error) {
	span := timespan.Year(now)

	doc := &Document{
		UTCOffset: timespan.UTCOffset(now),
		Timespan:  Timespan{Start: span.StartMillis(), Stop: span.StopMillis()},
	}

	outTemp, err := a.DaySummaryVectors(ctx, "outTemp", span,
		[]archive.Aggregate{archive.AggMin, archive.AggMax, archive.AggAvg})
	if err != nil {
		return nil, err
	}
	places := units.Decimals("outTemp")
	doc.Temperature = newPlot(CategoryTemperature)
	doc.Temperature.Series["outTempminmax"] = bandSeries(outTemp, places)
	doc.Temperature.Series["outTempaverage"] = avgSeries(outTemp.Times, outTemp.Vecs[archive.AggAvg], places)

	// appTemp summaries may not exist at all; probe and omit on failure
	appTemp, err := a.DaySummaryVectors(ctx, "appTemp", span,
		[]archive.Aggregate{archive.AggMin, archive.AggMax, archive.AggAvg})
	hasAppTemp := err == nil && len(appTemp.Times) > 0 && !allNil(appTemp.Vecs[archive.AggMin])
	if err != nil {
		log.WithError(err).Debug("No appTemp daily summaries, omitting series.")
	}
	if hasAppTemp {
		doc.Temperature.Series["appTempminmax"] = bandSeries(appTemp, places)
		doc.Temperature.Series["appTempaverage"] = avgSeries(appTemp.Times, appTemp.Vecs[archive.AggAvg], places)
	}

	windchill, err := a.DaySummaryVectors(ctx, "windchill", span, []archive.Aggregate{archive.AggAvg})
	if err != nil {
		return nil, err
	}
	heatindex, err := a.DaySummaryVectors(ctx, "heatindex", span, []archive.Aggregate{archive.AggAvg})
	if err != nil {
		return nil, err
	}
	doc.Windchill = newPlot(CategoryWindchill)
	doc.Windchill.Series["windchillaverage"] = avgSeries(windchill.Times, windchill.Vecs[archive.AggAvg], places)
	doc.Windchill.Series["heatindexaverage"] = avgSeries(heatindex.Times, heatindex.Vecs[archive.AggAvg], places)
	if hasAppTemp {
		doc.Windchill.Series["appTempaverage"] = avgSeries(appTemp.Times, appTemp.Vecs[archive.AggAvg], places)
	}

	humidity, err := a.DaySummaryVectors(ctx, "outHumidity", span,
		[]archive.Aggregate{archive.AggMin, archive.AggMax, archive.AggAvg})
	if err != nil {
		return nil, err
	}
	places = units.Decimals("outHumidity")
	doc.Humidity = newPlot(CategoryHumidity)
	doc.Humidity.Series["outHumidityminmax"] = bandSeries(humidity, places)
	doc.Humidity.Series["outHumidityaverage"] = avgSeries(humidity.Times, humidity.Vecs[archive.AggAvg], places)

	barometer, err := a.DaySummaryVectors(ctx, "barometer", span,
		[]archive.Aggregate{archive.AggMin, archive.AggMax, archive.AggAvg})
	if err != nil {
		return nil, err
	}
	places = units.Decimals("barometer")
	doc.Barometer = newPlot(CategoryBarometer)
	doc.Barometer.Series["barometerminmax"] = bandSeries(barometer, places)
	doc.Barometer.Series["barometeraverage"] = avgSeries(barometer.Times, barometer.Vecs[archive.AggAvg], places)

	// the wind summary's max is the day's gust; windSpeed carries the
	// averaged speeds
	wind, err := a.DaySummaryVectors(ctx, "wind", span, []archive.Aggregate{archive.AggMax})
	if err != nil {
		return nil, err
	}
	windSpeed, err := a.DaySummaryVectors(ctx, "windSpeed", span,
		[]archive.Aggregate{archive.AggMax, archive.AggAvg})
	if err != nil {
		return nil, err
	}
	places = units.Decimals("windSpeed")
	doc.Wind = newPlot(CategoryWind)
	doc.Wind.Series["windGustmax"] = avgSeries(wind.Times, wind.Vecs[archive.AggMax], places)
	doc.Wind.Series["windSpeedmax"] = avgSeries(windSpeed.Times, windSpeed.Vecs[archive.AggMax], places)
	doc.Wind.Series["windSpeedaverage"] = avgSeries(windSpeed.Times, windSpeed.Vecs[archive.AggAvg], places)

	windDir, err := a.DaySummaryVectors(ctx, "wind", span, []archive.Aggregate{archive.AggVecDir})
	if err != nil {
		return nil, err
	}
	doc.WindDir = newPlot(CategoryWindDir)
	doc.WindDir.Series["windDir"] = avgSeries(windDir.Times, windDir.Vecs[archive.AggVecDir], units.Decimals("windDir"))

	rain, err := a.DaySummaryVectors(ctx, "rain", span, []archive.Aggregate{archive.AggSum})
	if err != nil {
		return nil, err
	}
	doc.Rain = newPlot(CategoryRain)
	doc.Rain.Series["rainsum"] = avgSeries(rain.Times, rain.Vecs[archive.AggSum], units.Decimals("rain"))

	radiation, err := a.DaySummaryVectors(ctx, "radiation", span,
		[]archive.Aggregate{archive.AggMax, archive.AggAvg})
	if err != nil {
		return nil, err
	}
	places = units.Decimals("radiation")
	doc.Radiation = newPlot(CategoryRadiation)
	doc.Radiation.Series["radiationmax"] = avgSeries(radiation.Times, radiation.Vecs[archive.AggMax], places)
	doc.Radiation.Series["radiationaverage"] = avgSeries(radiation.Times, radiation.Vecs[archive.AggAvg], places)

	uv, err := a.DaySummaryVectors(ctx, "UV", span,
		[]archive.Aggregate{archive.AggMax, archive.AggAvg})
	if err != nil {
		return nil, err
	}
	places = units.Decimals("UV")
	doc.UV = newPlot(CategoryUV)
	doc.UV.Series["uvmax"] = avgSeries(uv.Times, uv.Vecs[archive.AggMax], places)
	doc.UV.Series["uvaverage"] = avgSeries(uv.Times, uv.Vecs[archive.AggAvg], places)

	return doc, nil
}

func bandSeries(s *archive.DaySummary, decimals int) *Series {
	mins := s.Vecs[archive.AggMin]
	maxs := s.Vecs[archive.AggMax]
	out := &Series{Ranges: make([]RangePoint, len(s.Times))}
	for i, t := range s.Times {
		out.Ranges[i] = RangePoint{
			Time: t * 1000,
			Min:  numbers.RoundNone(mins[i], decimals),
			Max:  numbers.RoundNone(maxs[i], decimals),
		}
	}
	return out
}

func avgSeries(times []int64, vec []*float64, decimals int) *Series {
	values := numbers.RoundVector(vec, decimals)
	out := &Series{Data: make([]Point, len(times))}
	for i, t := range times {
		out.Data[i] = Point{Time: t * 1000, Value: values[i]}
	}
	return out
}

func allNil(vec []*float64) bool {
	for _, v := range vec {
		if v != nil {
			return false
		}
	}
	return true
}
