package main

import (
	"context"
	"log"

	_ "orders_etl/docs"
	"orders_etl/internal/adapter/http/routes"
	"orders_etl/internal/bootstrap"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Orders ETL Runner API
// @version         1.0
// @description     Local HTTP runner for the order flattening job (S3 JSON to partitioned Parquet).

// @host localhost:8080

// @BasePath  /v1

func main() {
	app, err := bootstrap.New(context.Background())
	if err != nil {
		log.Fatalf("failed to bootstrap: %v", err)
	}
	defer func() { _ = app.Logger.Sync() }()

	if err := routes.Run(app); err != nil {
		app.Logger.Fatal("http runner stopped", zap.Error(err))
	}
}
