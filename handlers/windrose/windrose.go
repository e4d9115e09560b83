package windrose

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openwx/wxcharts/archive"
	rose "github.com/openwx/wxcharts/windrose"
)

var station *archive.Archive

// Register takes care of registering all handler functions to the router.
func Register(r *gin.RouterGroup, a *archive.Archive) {
	station = a
	g := r.Group("windrose")
	g.GET("/:period", handleWindRoseRequest)
}

func handleWindRoseRequest(ctx *gin.Context) {
	p := rose.Period(ctx.Param("period"))

	r, err := rose.Build(ctx.Request.Context(), station, p, time.Now())
	if err != nil {
		if errors.Is(err, rose.ErrUnknownPeriod) {
			ctx.AbortWithStatus(http.StatusNotFound)
			return
		}
		ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "data unavailable"})
		return
	}
	ctx.JSON(http.StatusOK, r)
}
