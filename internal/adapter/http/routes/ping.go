package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	PathPing = "/ping"
)

// Ping godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /ping [get]
func ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, ping)
}
