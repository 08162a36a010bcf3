package routes

import (
	"orders_etl/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathRuns = "/runs"
)

func addRunRoutes(rg *gin.RouterGroup, runHandler *handlers.RunHandler) {
	runs := rg.Group(PathRuns)
	{
		runs.POST("", runHandler.StartRun)
		runs.GET("/:run_id", runHandler.GetRun)
	}
}
