package charts

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/openwx/wxcharts/chart"
	"github.com/openwx/wxcharts/feed"
	"github.com/openwx/wxcharts/feedcache"
)

type mergeKey struct {
	window   feed.Window
	category feed.Category
}

// merged configurations, rebuilt lazily after each feed publish
var (
	merged = map[mergeKey]*chart.Options{}
	mm     sync.Mutex

	subscribeOnce sync.Once
)

// Register takes care of registering all handler functions to the router.
func Register(r *gin.RouterGroup) {
	g := r.Group("charts")
	g.GET("/:window/:category", handleChartRequest)
	g.GET("/:window/:category/tooltip/:at", handleTooltipRequest)

	subscribeOnce.Do(func() {
		feedcache.Subscribe(invalidate, feed.WindowWeek, feed.WindowYear)
	})
}

func invalidate(w feed.Window, _ *feed.Document) {
	mm.Lock()
	defer mm.Unlock()
	for k := range merged {
		if k.window == w {
			delete(merged, k)
		}
	}
}

func handleChartRequest(ctx *gin.Context) {
	opts, ok := mergedOptions(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, opts)
}

func handleTooltipRequest(ctx *gin.Context) {
	at, err := strconv.ParseInt(ctx.Param("at"), 10, 64)
	if err != nil {
		ctx.AbortWithError(http.StatusBadRequest, err).SetType(gin.ErrorTypeBind)
		return
	}

	opts, ok := mergedOptions(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, chart.TooltipRowsAt(opts, at))
}

// mergedOptions resolves the request's window and category into a merged
// configuration, serving from the memo when the feed has not changed since
// the last merge. It writes the error response itself when it returns
// false.
func mergedOptions(ctx *gin.Context) (*chart.Options, bool) {
	w := feed.Window(ctx.Param("window"))
	if w != feed.WindowWeek && w != feed.WindowYear {
		ctx.AbortWithStatus(http.StatusNotFound)
		return nil, false
	}
	c := feed.Category(ctx.Param("category"))
	if !chart.Enabled(c) {
		ctx.AbortWithStatus(http.StatusNotFound)
		return nil, false
	}

	mm.Lock()
	defer mm.Unlock()
	if opts, ok := merged[mergeKey{w, c}]; ok {
		return opts, true
	}

	doc := feedcache.Get(w)
	if doc == nil {
		ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "data unavailable"})
		return nil, false
	}

	opts, err := chart.Build(c, w)
	if err != nil {
		ctx.AbortWithStatus(http.StatusNotFound)
		return nil, false
	}
	if err := chart.Merge(opts, doc, c); err != nil {
		if errors.Is(err, chart.ErrCategoryUnavailable) {
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "data unavailable"})
			return nil, false
		}
		ctx.AbortWithError(http.StatusInternalServerError, err)
		return nil, false
	}

	merged[mergeKey{w, c}] = opts
	return opts, true
}
