package archive

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwx/wxcharts/utils/timespan"
)

func testArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	_, err = a.db.Exec(`CREATE TABLE archive (
		dateTime INTEGER NOT NULL PRIMARY KEY,
		usUnits INTEGER,
		outTemp REAL, dewpoint REAL, appTemp REAL,
		windchill REAL, heatindex REAL, outHumidity REAL,
		barometer REAL, windSpeed REAL, windGust REAL, windDir REAL,
		rain REAL, radiation REAL, maxSolarRad REAL, UV REAL
	)`)
	require.NoError(t, err)

	_, err = a.db.Exec(`CREATE TABLE archive_day_outTemp (
		dateTime INTEGER NOT NULL PRIMARY KEY,
		min REAL, mintime INTEGER, max REAL, maxtime INTEGER,
		sum REAL, count INTEGER, wsum REAL, sumtime REAL
	)`)
	require.NoError(t, err)

	_, err = a.db.Exec(`CREATE TABLE archive_day_wind (
		dateTime INTEGER NOT NULL PRIMARY KEY,
		min REAL, mintime INTEGER, max REAL, maxtime INTEGER,
		sum REAL, count INTEGER, wsum REAL, sumtime REAL,
		max_dir REAL, xsum REAL, ysum REAL, dirsumtime INTEGER,
		squaresum REAL, wsquaresum REAL
	)`)
	require.NoError(t, err)

	return a
}

func span(start, stop int64) timespan.Span {
	return timespan.Span{Start: time.Unix(start, 0).UTC(), Stop: time.Unix(stop, 0).UTC()}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "dsn")
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestSeriesChronologicalWithGaps(t *testing.T) {
	a := testArchive(t)
	_, err := a.db.Exec(`INSERT INTO archive (dateTime, outTemp) VALUES
		(300, 21.0), (100, 20.0), (200, NULL)`)
	require.NoError(t, err)

	points, err := a.Series(context.Background(), "outTemp", span(0, 1000))
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, int64(100), points[0].Time)
	assert.Equal(t, 20.0, *points[0].Value)
	assert.Nil(t, points[1].Value)
	assert.Equal(t, 21.0, *points[2].Value)
}

func TestSeriesUnknownObsType(t *testing.T) {
	a := testArchive(t)
	_, err := a.Series(context.Background(), "bogus", span(0, 1000))
	assert.ErrorIs(t, err, ErrUnknownObsType)
}

func TestSeriesAggregatedHourlySum(t *testing.T) {
	a := testArchive(t)
	// two samples in the first hour, one in the second
	_, err := a.db.Exec(`INSERT INTO archive (dateTime, rain) VALUES
		(600, 1.0), (3600, 2.0), (4200, 0.5)`)
	require.NoError(t, err)

	points, err := a.SeriesAggregated(context.Background(), "rain", span(0, 7200), "sum", time.Hour)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, int64(3600), points[0].Time)
	assert.Equal(t, 3.0, *points[0].Value)
	assert.Equal(t, int64(7200), points[1].Time)
	assert.Equal(t, 0.5, *points[1].Value)
}

func TestHasData(t *testing.T) {
	a := testArchive(t)
	_, err := a.db.Exec(`INSERT INTO archive (dateTime, outTemp, appTemp) VALUES (100, 20.0, NULL)`)
	require.NoError(t, err)

	assert.True(t, a.HasData(context.Background(), "outTemp", span(0, 1000)))
	assert.False(t, a.HasData(context.Background(), "appTemp", span(0, 1000)))
	assert.False(t, a.HasData(context.Background(), "bogus", span(0, 1000)))
}

func TestDaySummaryVectors(t *testing.T) {
	a := testArchive(t)
	_, err := a.db.Exec(`INSERT INTO archive_day_outTemp
		(dateTime, min, mintime, max, maxtime, sum, count, wsum, sumtime) VALUES
		(86400, 10.0, 90000, 20.0, 130000, 4320.0, 288, 1296000.0, 86400.0),
		(172800, 12.0, 180000, 22.0, 220000, 4464.0, 288, 1512000.0, 86400.0)`)
	require.NoError(t, err)

	s, err := a.DaySummaryVectors(context.Background(), "outTemp", span(86400, 259200),
		[]Aggregate{AggMin, AggMax, AggAvg})
	require.NoError(t, err)
	require.Equal(t, []int64{86400, 172800}, s.Times)
	assert.Equal(t, 10.0, *s.Vecs[AggMin][0])
	assert.Equal(t, 22.0, *s.Vecs[AggMax][1])
	assert.InDelta(t, 15.0, *s.Vecs[AggAvg][0], 1e-9)
	assert.InDelta(t, 17.5, *s.Vecs[AggAvg][1], 1e-9)
}

func TestDaySummaryVecDir(t *testing.T) {
	a := testArchive(t)
	// due east: xsum positive, ysum zero
	_, err := a.db.Exec(`INSERT INTO archive_day_wind
		(dateTime, min, mintime, max, maxtime, sum, count, wsum, sumtime,
		 max_dir, xsum, ysum, dirsumtime, squaresum, wsquaresum) VALUES
		(86400, 0.0, 90000, 8.0, 130000, 400.0, 288, 120000.0, 86400.0,
		 95.0, 500.0, 0.0, 86400, 0.0, 0.0),
		(172800, 0.0, 180000, 9.0, 220000, 410.0, 288, 123000.0, 86400.0,
		 100.0, 0.0, 0.0, 86400, 0.0, 0.0)`)
	require.NoError(t, err)

	s, err := a.DaySummaryVectors(context.Background(), "wind", span(86400, 259200),
		[]Aggregate{AggVecDir})
	require.NoError(t, err)
	require.Len(t, s.Vecs[AggVecDir], 2)
	assert.InDelta(t, 90.0, *s.Vecs[AggVecDir][0], 1e-9)
	// zero vector sum carries no direction
	assert.Nil(t, s.Vecs[AggVecDir][1])
}
