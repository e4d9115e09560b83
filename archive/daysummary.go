package archive

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/openwx/wxcharts/utils/timespan"
)

// Aggregate selects one statistic from the daily summary tables.
type Aggregate string

// Supported daily summary aggregates.
const (
	AggMin    Aggregate = "min"
	AggMax    Aggregate = "max"
	AggSum    Aggregate = "sum"
	AggCount  Aggregate = "count"
	AggAvg    Aggregate = "avg"
	AggVecDir Aggregate = "vecdir"
)

// DaySummary holds per-day aggregate vectors for one observation type. All
// vectors share the Times axis; element i of every vector belongs to day i.
type DaySummary struct {
	Times []int64 // epoch seconds, start of day
	Vecs  map[Aggregate][]*float64
}

// daily summary tables carry these columns; vector types (wind) append the
// directional sums
const (
	scalarFields = "dateTime,min,mintime,max,maxtime,sum,count,wsum,sumtime"
	vectorFields = scalarFields + ",max_dir,xsum,ysum,dirsumtime,squaresum,wsquaresum"
)

type summaryRow struct {
	dateTime                 int64
	min, max, sum            sql.NullFloat64
	mintime, maxtime         sql.NullInt64
	count                    sql.NullInt64
	wsum, sumtime            sql.NullFloat64
	maxDir                   sql.NullFloat64
	xsum, ysum               sql.NullFloat64
	dirsumtime               sql.NullInt64
	squaresum, wsquaresum    sql.NullFloat64
}

// DaySummaryVectors returns per-day aggregate vectors for one observation
// type from its archive_day table. Daily summary table names are derived
// from the observation type; obsType "wind" addresses the vector summary
// that carries the directional sums required by AggVecDir.
func (a *Archive) DaySummaryVectors(ctx context.Context, obsType string, span timespan.Span, aggs []Aggregate) (*DaySummary, error) {
	table, ok := summaryTables[obsType]
	if !ok {
		return nil, fmt.Errorf("day summary %q: %w", obsType, ErrUnknownObsType)
	}

	fields := scalarFields
	for _, agg := range aggs {
		if agg == AggVecDir {
			fields = vectorFields
			break
		}
	}

	query := a.rebind("SELECT " + fields + " FROM " + table +
		" WHERE dateTime >= ? AND dateTime < ? ORDER BY dateTime ASC")
	start := timespan.StartOfDay(span.Start).Unix()
	rows, err := a.db.QueryContext(ctx, query, start, span.Stop.Unix())
	if err != nil {
		return nil, fmt.Errorf("day summary %q: %w", obsType, err)
	}
	defer closeRows(rows, obsType)

	out := &DaySummary{Vecs: make(map[Aggregate][]*float64, len(aggs))}
	for _, agg := range aggs {
		out.Vecs[agg] = make([]*float64, 0)
	}

	for rows.Next() {
		var r summaryRow
		dest := []interface{}{&r.dateTime, &r.min, &r.mintime, &r.max, &r.maxtime,
			&r.sum, &r.count, &r.wsum, &r.sumtime}
		if fields == vectorFields {
			dest = append(dest, &r.maxDir, &r.xsum, &r.ysum, &r.dirsumtime,
				&r.squaresum, &r.wsquaresum)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out.Times = append(out.Times, r.dateTime)
		for _, agg := range aggs {
			out.Vecs[agg] = append(out.Vecs[agg], r.aggregate(agg))
		}
	}
	return out, rows.Err()
}

// summary table per observation type; wind is the one vector type
var summaryTables = map[string]string{
	"outTemp":     "archive_day_outTemp",
	"appTemp":     "archive_day_appTemp",
	"windchill":   "archive_day_windchill",
	"heatindex":   "archive_day_heatindex",
	"outHumidity": "archive_day_outHumidity",
	"barometer":   "archive_day_barometer",
	"windSpeed":   "archive_day_windSpeed",
	"wind":        "archive_day_wind",
	"rain":        "archive_day_rain",
	"radiation":   "archive_day_radiation",
	"UV":          "archive_day_UV",
}

func (r *summaryRow) aggregate(agg Aggregate) *float64 {
	switch agg {
	case AggMin:
		return nullable(r.min)
	case AggMax:
		return nullable(r.max)
	case AggSum:
		return nullable(r.sum)
	case AggCount:
		if !r.count.Valid {
			return nil
		}
		v := float64(r.count.Int64)
		return &v
	case AggAvg:
		// weighted average over the day's record intervals
		if !r.wsum.Valid || !r.sumtime.Valid || r.sumtime.Float64 == 0 {
			return nil
		}
		v := r.wsum.Float64 / r.sumtime.Float64
		return &v
	case AggVecDir:
		if !r.xsum.Valid || !r.ysum.Valid {
			return nil
		}
		if r.xsum.Float64 == 0 && r.ysum.Float64 == 0 {
			return nil
		}
		deg := 90.0 - (180.0/math.Pi)*math.Atan2(r.ysum.Float64, r.xsum.Float64)
		if deg < 0 {
			deg += 360.0
		}
		return &deg
	}
	return nil
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
