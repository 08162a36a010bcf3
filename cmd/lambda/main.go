package main

import (
	"context"
	"log"

	lambdaadapter "orders_etl/internal/adapter/lambda"
	"orders_etl/internal/bootstrap"

	"github.com/aws/aws-lambda-go/lambda"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	app, err := bootstrap.New(context.Background())
	if err != nil {
		log.Fatalf("failed to bootstrap: %v", err)
	}
	defer func() { _ = app.Logger.Sync() }()

	lambda.Start(lambdaadapter.NewHandler(app.UseCase, app.Logger).Handle)
}
