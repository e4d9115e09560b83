package feeds

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openwx/wxcharts/feed"
	"github.com/openwx/wxcharts/feedcache"
)

// Register takes care of registering all handler functions to the router.
func Register(r *gin.RouterGroup) {
	g := r.Group("feeds")
	g.GET("/:window", handleFeedRequest)
}

func handleFeedRequest(ctx *gin.Context) {
	w := feed.Window(ctx.Param("window"))
	if w != feed.WindowWeek && w != feed.WindowYear {
		ctx.AbortWithStatus(http.StatusNotFound)
		return
	}

	doc := feedcache.Get(w)
	if doc == nil {
		ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "data unavailable"})
		return
	}
	ctx.JSON(http.StatusOK, doc)
}
