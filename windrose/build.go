package windrose

import (
	"context"
	"fmt"
	"time"

	"github.com/openwx/wxcharts/archive"
	"github.com/openwx/wxcharts/units"
	"github.com/openwx/wxcharts/utils/timespan"
)

// Period selects how far back the wind rose looks.
type Period string

// Wind rose periods.
const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ErrUnknownPeriod is returned for periods outside the fixed set.
var ErrUnknownPeriod = fmt.Errorf("unknown wind rose period")

func span(p Period, now time.Time) (timespan.Span, error) {
	switch p {
	case PeriodDay:
		return timespan.Span{Start: now.AddDate(0, 0, -1), Stop: now}, nil
	case PeriodWeek:
		return timespan.Span{Start: now.AddDate(0, 0, -7), Stop: now}, nil
	case PeriodMonth:
		start := timespan.StartOfDay(now).AddDate(0, -1, 0)
		return timespan.Span{Start: start, Stop: now}, nil
	case PeriodYear:
		start := timespan.StartOfDay(now).AddDate(-1, 0, 0)
		return timespan.Span{Start: start, Stop: now}, nil
	}
	return timespan.Span{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, p)
}

// Build assembles the wind rose of one period. Day and week periods bin
// raw archive samples; month and year periods bin per-day averages and
// vector directions from the day summaries.
func Build(ctx context.Context, a *archive.Archive, p Period, now time.Time) (*Rose, error) {
	o := CurrentOptions()

	sp, err := span(p, now)
	if err != nil {
		return nil, err
	}

	var speed, dir []*float64
	if p == PeriodDay || p == PeriodWeek {
		speedObs, dirObs := o.Source, "windDir"
		if o.Source == "windGust" {
			dirObs = "windGustDir"
		}
		speedPts, err := a.Series(ctx, speedObs, sp)
		if err != nil {
			return nil, err
		}
		dirPts, err := a.Series(ctx, dirObs, sp)
		if err != nil {
			return nil, err
		}
		speed, dir = values(speedPts), values(dirPts)
	} else {
		ds, err := a.DaySummaryVectors(ctx, "wind", sp, []archive.Aggregate{archive.AggAvg, archive.AggVecDir})
		if err != nil {
			return nil, err
		}
		speed, dir = ds.Vecs[archive.AggAvg], ds.Vecs[archive.AggVecDir]
	}
	if len(speed) != len(dir) {
		return nil, fmt.Errorf("windrose: speed and direction vectors differ in length (%d vs %d)", len(speed), len(dir))
	}

	return Calculate(speed, dir, units.ObsLabel(o.Source), o), nil
}

func values(pts []archive.Point) []*float64 {
	out := make([]*float64, len(pts))
	for i, p := range pts {
		out[i] = p.Value
	}
	return out
}
