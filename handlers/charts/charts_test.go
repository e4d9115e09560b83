package charts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwx/wxcharts/feed"
	"github.com/openwx/wxcharts/feedcache"
)

func router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(&r.RouterGroup)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func f(v float64) *float64 { return &v }

func weekDoc(units string) *feed.Document {
	return &feed.Document{
		UTCOffset: 3600,
		Timespan:  feed.Timespan{Start: 1000, Stop: 2000},
		Temperature: &feed.Plot{
			Units:    units,
			MinRange: f(10),
			Series: map[string]*feed.Series{
				"outTemp": {Data: []feed.Point{
					{Time: 1000, Value: f(5)},
					{Time: 1500, Value: f(9)},
				}},
				"dewpoint": {Data: []feed.Point{
					{Time: 1500, Value: f(2)},
				}},
			},
		},
	}
}

func TestUnknownWindowAndCategory(t *testing.T) {
	r := router()
	assert.Equal(t, http.StatusNotFound, get(r, "/charts/month/temperature").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/charts/week/sunshine").Code)
}

func TestUnavailableFeed(t *testing.T) {
	// no year document is ever published in this test
	w := get(router(), "/charts/year/temperature")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error": "data unavailable"}`, w.Body.String())
}

func TestUnavailableCategory(t *testing.T) {
	feedcache.Publish(feed.WindowWeek, weekDoc("°C"))
	waitInvalidated(t, feed.WindowWeek)

	// the document carries no UV group
	w := get(router(), "/charts/week/uv")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMergedChart(t *testing.T) {
	feedcache.Publish(feed.WindowWeek, weekDoc("°C"))
	waitInvalidated(t, feed.WindowWeek)

	w := get(router(), "/charts/week/temperature")
	require.Equal(t, http.StatusOK, w.Code)

	var opts struct {
		YAxis struct {
			Title    struct{ Text string } `json:"title"`
			MinRange float64               `json:"minRange"`
		} `json:"yAxis"`
		XAxis struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"xAxis"`
		Tooltip struct {
			ValueSuffix     string `json:"valueSuffix"`
			OrderDescending bool   `json:"orderDescending"`
		} `json:"tooltip"`
		Series []struct {
			Name string            `json:"name"`
			Data []json.RawMessage `json:"data"`
		} `json:"series"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opts))

	assert.Equal(t, "°C", opts.YAxis.Title.Text)
	assert.Equal(t, 10.0, opts.YAxis.MinRange)
	assert.Equal(t, "°C", opts.Tooltip.ValueSuffix)
	assert.True(t, opts.Tooltip.OrderDescending)
	assert.Equal(t, 1000.0, opts.XAxis.Min)
	assert.Equal(t, 2000.0, opts.XAxis.Max)

	// apparent temperature is absent from the document and dropped
	require.Len(t, opts.Series, 2)
	assert.Equal(t, "Temperature", opts.Series[0].Name)
	assert.Len(t, opts.Series[0].Data, 2)
}

func TestTooltipRowsDescending(t *testing.T) {
	feedcache.Publish(feed.WindowWeek, weekDoc("°C"))
	waitInvalidated(t, feed.WindowWeek)

	w := get(router(), "/charts/week/temperature/tooltip/1500")
	require.Equal(t, http.StatusOK, w.Code)

	var rows []struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, 9.0, rows[0].Value)
	assert.Equal(t, 2.0, rows[1].Value)

	assert.Equal(t, http.StatusBadRequest, get(router(), "/charts/week/temperature/tooltip/noon").Code)
}

func TestPublishInvalidatesMemo(t *testing.T) {
	r := router()
	feedcache.Publish(feed.WindowWeek, weekDoc("°C"))
	waitInvalidated(t, feed.WindowWeek)

	first := get(r, "/charts/week/temperature")
	require.Equal(t, http.StatusOK, first.Code)
	require.True(t, strings.Contains(first.Body.String(), "°C"))

	feedcache.Publish(feed.WindowWeek, weekDoc("°F"))

	// the subscriber callback runs asynchronously
	require.Eventually(t, func() bool {
		w := get(r, "/charts/week/temperature")
		return w.Code == http.StatusOK && strings.Contains(w.Body.String(), "°F")
	}, time.Second, 10*time.Millisecond)
}

// waitInvalidated blocks until the memo invalidation of a publish has been
// processed, so requests merge against the freshly published document.
func waitInvalidated(t *testing.T, w feed.Window) {
	t.Helper()
	require.Eventually(t, func() bool {
		mm.Lock()
		defer mm.Unlock()
		for k := range merged {
			if k.window == w {
				return false
			}
		}
		return true
	}, time.Second, time.Millisecond)
}
