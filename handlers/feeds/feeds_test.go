package feeds

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

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

func TestUnknownWindow(t *testing.T) {
	w := get(router(), "/feeds/month")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnavailableDocument(t *testing.T) {
	// nothing ever publishes a year document in this test
	w := get(router(), "/feeds/year")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error": "data unavailable"}`, w.Body.String())
}

func TestServesLatestDocument(t *testing.T) {
	v := 20.5
	feedcache.Publish(feed.WindowWeek, &feed.Document{
		UTCOffset: 3600,
		Timespan:  feed.Timespan{Start: 1000, Stop: 2000},
		Temperature: &feed.Plot{
			Units: "°C",
			Series: map[string]*feed.Series{
				"outTemp": {Data: []feed.Point{{Time: 1500, Value: &v}}},
			},
		},
	})

	w := get(router(), "/feeds/week")
	require.Equal(t, http.StatusOK, w.Code)

	var doc feed.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, 3600, doc.UTCOffset)
	require.NotNil(t, doc.Temperature)
	assert.Equal(t, "°C", doc.Temperature.Units)
	assert.Nil(t, doc.Rain)
}
