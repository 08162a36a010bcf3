package routes

import (
	"fmt"

	_ "orders_etl/docs" // swag-generated OpenAPI docs
	"orders_etl/internal/adapter/http/handlers"
	"orders_etl/internal/bootstrap"
	"orders_etl/internal/infrastructure/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Run serves the HTTP runner on the configured port until the listener fails.
func Run(app *bootstrap.App) error {
	router := NewRouter(app.Logger, handlers.NewRunHandler(app.UseCase))

	addr := ":" + app.Config.App.Port
	app.Logger.Info("http runner listening", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		return fmt.Errorf("failed to startup the application: %w", err)
	}
	return nil
}

func NewRouter(log *zap.Logger, runHandler *handlers.RunHandler) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, log)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addRunRoutes(v1, runHandler)
	return router
}

func setMiddlewares(router *gin.Engine, log *zap.Logger) {
	router.Use(logger.RequestID())
	router.Use(logger.GinMiddleware(log))
	router.Use(logger.Recovery(log))
}
