// Package bootstrap wires configuration, logging, AWS clients and the use
// case shared by the Lambda and HTTP entry points.
package bootstrap

import (
	"context"
	"fmt"

	"orders_etl/internal/adapter/persistence/repository"
	"orders_etl/internal/infrastructure/awsconfig"
	"orders_etl/internal/infrastructure/columnar"
	"orders_etl/internal/infrastructure/config"
	"orders_etl/internal/infrastructure/database"
	"orders_etl/internal/infrastructure/logger"
	"orders_etl/internal/infrastructure/storage"
	"orders_etl/internal/usecase"

	"go.uber.org/zap"
)

type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	UseCase *usecase.FlattenOrdersUseCase
}

// New builds the clients once per process; Lambda reuses them across warm
// invocations.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.FromSettings(cfg.Log.Level, cfg.Log.Format))
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	awsCfg, err := awsconfig.Load(ctx, cfg.AWS)
	if err != nil {
		return nil, err
	}

	objects := storage.NewS3ObjectStorage(awsCfg,
		storage.WithEndpoint(cfg.AWS.S3Endpoint),
		storage.WithPathStyle(cfg.AWS.S3UsePathStyle),
		storage.WithLogger(log.Named("s3")),
	)

	opts := []usecase.FlattenOrdersOption{
		usecase.WithProcessedPrefix(cfg.Output.Prefix),
		usecase.WithOutputBucket(cfg.Output.Bucket),
		usecase.WithLogger(log.Named("flatten")),
	}
	if cfg.Audit.Enabled() {
		ddb := database.NewDynamoDBClient(awsCfg, cfg.AWS.DynamoDBEndpoint)
		opts = append(opts, usecase.WithRunRepository(repository.NewRunDynamoRepository(ddb, cfg.Audit.RunsTable)))
	}

	log.Info("orders etl configured",
		zap.String("processed_prefix", cfg.Output.Prefix),
		zap.String("processed_bucket", cfg.Output.Bucket),
		zap.Bool("run_audit", cfg.Audit.Enabled()),
		zap.String("region", cfg.AWS.Region),
	)

	return &App{
		Config:  cfg,
		Logger:  log,
		UseCase: usecase.NewFlattenOrdersUseCase(objects, columnar.NewParquetEncoder(), opts...),
	}, nil
}
