// Package awsconfig loads the shared aws.Config used by the S3 and DynamoDB
// clients.
package awsconfig

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	infraconfig "orders_etl/internal/infrastructure/config"
)

// Load builds an aws.Config for the configured region.
//
// Inside Lambda the default credential chain picks up the execution role.
// When an endpoint override is set (MinIO, LocalStack, DynamoDB Local) the
// static key pair is used instead, falling back to "local"/"local" because
// local emulators do not validate credentials but the SDK requires them.
func Load(ctx context.Context, cfg infraconfig.AWSConfig) (aws.Config, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.HasEndpointOverride() {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(StaticCredentials(cfg)))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to create AWS config: %w", err)
	}
	return awsCfg, nil
}

func StaticCredentials(cfg infraconfig.AWSConfig) aws.CredentialsProvider {
	key, secret := cfg.AccessKeyID, cfg.SecretAccessKey
	if key == "" {
		key, secret = "local", "local"
	}
	return credentials.NewStaticCredentialsProvider(key, secret, "")
}
