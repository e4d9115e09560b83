// Package archive provides read access to a weather-station archive
// database. The archive holds one row per record interval in the `archive`
// table plus one `archive_day_<obs>` daily summary table per observation
// type. Both sqlite3 and postgres archives are supported.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	// database drivers
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/openwx/wxcharts/config"
	"github.com/openwx/wxcharts/utils/timespan"
)

// Config paths
const (
	PathDriver = "archive.driver"
	PathDSN    = "archive.dsn"
)

func init() {
	config.RootCtx.PersistentFlags().String(PathDriver, DriverSQLite, "station archive database driver (sqlite3 or postgres)")
	config.Viper.BindPFlag(PathDriver, config.RootCtx.PersistentFlags().Lookup(PathDriver))

	config.RootCtx.PersistentFlags().String(PathDSN, "weewx.sdb", "station archive data source name")
	config.Viper.BindPFlag(PathDSN, config.RootCtx.PersistentFlags().Lookup(PathDSN))
}

// Supported drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Error constants
var (
	ErrUnknownDriver  = errors.New("unknown archive driver")
	ErrUnknownObsType = errors.New("unknown observation type")
)

// Point is a single archive sample. A nil Value is a recorded gap.
type Point struct {
	Time  int64 // epoch seconds
	Value *float64
}

// Archive wraps the station database.
type Archive struct {
	db     *sql.DB
	driver string
}

// observation type -> archive column. Insolation lives in the maxSolarRad
// column of the extended schema.
var columns = map[string]string{
	"outTemp":     "outTemp",
	"dewpoint":    "dewpoint",
	"appTemp":     "appTemp",
	"windchill":   "windchill",
	"heatindex":   "heatindex",
	"outHumidity": "outHumidity",
	"barometer":   "barometer",
	"windSpeed":   "windSpeed",
	"windGust":    "windGust",
	"windDir":     "windDir",
	"windGustDir": "windGustDir",
	"rain":        "rain",
	"radiation":   "radiation",
	"insolation":  "maxSolarRad",
	"UV":          "UV",
}

// Open opens the station archive using the given database/sql driver.
func Open(driver, dsn string) (*Archive, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("open archive: %q: %w", driver, ErrUnknownDriver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return &Archive{db: db, driver: driver}, nil
}

// Close closes the underlying database handle.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Series returns the chronological raw samples of one observation type
// within span.
func (a *Archive) Series(ctx context.Context, obsType string, span timespan.Span) ([]Point, error) {
	col, ok := columns[obsType]
	if !ok {
		return nil, fmt.Errorf("series %q: %w", obsType, ErrUnknownObsType)
	}

	query := a.rebind("SELECT dateTime, " + col +
		" FROM archive WHERE dateTime > ? AND dateTime <= ? ORDER BY dateTime ASC")
	rows, err := a.db.QueryContext(ctx, query, span.Start.Unix(), span.Stop.Unix())
	if err != nil {
		return nil, fmt.Errorf("series %q: %w", obsType, err)
	}
	defer closeRows(rows, obsType)

	return scanPoints(rows)
}

// SeriesAggregated returns the samples of one observation type aggregated
// over fixed intervals. Timestamps are placed on the interval's stop
// boundary. agg is one of sum, avg, min or max.
func (a *Archive) SeriesAggregated(ctx context.Context, obsType string, span timespan.Span, agg string, interval time.Duration) ([]Point, error) {
	col, ok := columns[obsType]
	if !ok {
		return nil, fmt.Errorf("series %q: %w", obsType, ErrUnknownObsType)
	}
	fn, ok := map[string]string{"sum": "SUM", "avg": "AVG", "min": "MIN", "max": "MAX"}[agg]
	if !ok {
		return nil, fmt.Errorf("series %q: unsupported aggregate %q", obsType, agg)
	}

	secs := int64(interval / time.Second)
	start := span.Start.Unix()
	// integer bucket index relative to the span start; the -1 keeps samples
	// sitting exactly on a boundary in the preceding bucket
	query := a.rebind("SELECT (dateTime - ? - 1) / " + strconv.FormatInt(secs, 10) +
		" AS bucket, " + fn + "(" + col + ")" +
		" FROM archive WHERE dateTime > ? AND dateTime <= ?" +
		" GROUP BY bucket ORDER BY bucket ASC")
	rows, err := a.db.QueryContext(ctx, query, start, start, span.Stop.Unix())
	if err != nil {
		return nil, fmt.Errorf("series %q: %w", obsType, err)
	}
	defer closeRows(rows, obsType)

	var out []Point
	for rows.Next() {
		var bucket int64
		var v sql.NullFloat64
		if err := rows.Scan(&bucket, &v); err != nil {
			return nil, err
		}
		p := Point{Time: start + (bucket+1)*secs}
		if v.Valid {
			value := v.Float64
			p.Value = &value
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// HasData reports whether the archive holds at least one non-NULL sample
// for obsType within span. Observation types without an archive column
// report false; that is how optional categories are detected.
func (a *Archive) HasData(ctx context.Context, obsType string, span timespan.Span) bool {
	col, ok := columns[obsType]
	if !ok {
		return false
	}
	query := a.rebind("SELECT COUNT(" + col + ") FROM archive WHERE dateTime > ? AND dateTime <= ?")
	var n int64
	if err := a.db.QueryRowContext(ctx, query, span.Start.Unix(), span.Stop.Unix()).Scan(&n); err != nil {
		log.WithError(err).WithField("observation", obsType).Debug("Presence probe failed, treating as absent.")
		return false
	}
	return n > 0
}

// rebind rewrites ? placeholders into the $n form postgres expects.
func (a *Archive) rebind(query string) string {
	if a.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func scanPoints(rows *sql.Rows) ([]Point, error) {
	var out []Point
	for rows.Next() {
		var ts int64
		var v sql.NullFloat64
		if err := rows.Scan(&ts, &v); err != nil {
			return nil, err
		}
		p := Point{Time: ts}
		if v.Valid {
			value := v.Float64
			p.Value = &value
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func closeRows(rows *sql.Rows, obsType string) {
	if err := rows.Close(); err != nil {
		log.WithError(err).WithField("observation", obsType).Error("Could not close rows!")
	}
}
