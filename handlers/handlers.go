package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openwx/wxcharts/archive"
	"github.com/openwx/wxcharts/handlers/charts"
	"github.com/openwx/wxcharts/handlers/feeds"
	"github.com/openwx/wxcharts/handlers/windrose"
)

// Register takes care of registering all handler functions to the router.
func Register(r *gin.RouterGroup, a *archive.Archive) {
	g := r.Group("v1")
	feeds.Register(g)
	charts.Register(g)
	windrose.Register(g, a)
}
