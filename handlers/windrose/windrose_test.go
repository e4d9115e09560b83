package windrose

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwx/wxcharts/archive"
)

func router(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(&r.RouterGroup, testArchive(t))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestUnknownPeriod(t *testing.T) {
	w := get(router(t), "/windrose/fortnight")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServesWindRose(t *testing.T) {
	w := get(router(t), "/windrose/day")
	require.Equal(t, http.StatusOK, w.Code)

	var r struct {
		Directions []string `json:"xAxisCategories"`
		Series     []struct {
			Name string    `json:"name"`
			Data []float64 `json:"data"`
		} `json:"series"`
		Bullseye struct {
			Text string `json:"text"`
		} `json:"bullseye"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))

	assert.Len(t, r.Directions, 16)
	require.Len(t, r.Series, 6)
	// both samples blow from due east
	east := 4
	total := 0.0
	for _, s := range r.Series {
		total += s.Data[east]
	}
	assert.Equal(t, 100.0, total)
}

func testArchive(t *testing.T) *archive.Archive {
	t.Helper()
	path := filepath.Join(t.TempDir(), "station.sdb")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)

	_, err = db.Exec(`CREATE TABLE archive (
		dateTime INTEGER NOT NULL PRIMARY KEY, usUnits INTEGER,
		windSpeed REAL, windDir REAL)`)
	require.NoError(t, err)

	stmt, err := db.Prepare(`INSERT INTO archive (dateTime, windSpeed, windDir) VALUES (?, ?, ?)`)
	require.NoError(t, err)
	now := time.Now()
	for i, speed := range []float64{8.0, 12.0} {
		_, err = stmt.Exec(now.Add(time.Duration(-10+i)*time.Minute).Unix(), speed, 90.0)
		require.NoError(t, err)
	}
	require.NoError(t, stmt.Close())
	require.NoError(t, db.Close())

	a, err := archive.Open(archive.DriverSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}
