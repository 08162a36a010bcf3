// Package config loads the job configuration from the environment.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the entry points need to wire the job.
type Config struct {
	App    AppConfig
	Output OutputConfig
	AWS    AWSConfig
	Audit  AuditConfig
	Log    LogConfig
}

type AppConfig struct {
	Env  string
	Port string
}

// OutputConfig controls where the processed datasets land.
type OutputConfig struct {
	// Prefix is the key prefix of both datasets, without surrounding slashes.
	Prefix string
	// Bucket overrides the output bucket; empty means "same as the input".
	Bucket string
}

// AWSConfig carries region and local-endpoint overrides. Static credentials
// are only used together with an endpoint override (MinIO, LocalStack,
// DynamoDB Local); otherwise the default AWS credential chain applies.
type AWSConfig struct {
	Region           string
	AccessKeyID      string
	SecretAccessKey  string
	S3Endpoint       string
	S3UsePathStyle   bool
	DynamoDBEndpoint string
}

func (c AWSConfig) HasEndpointOverride() bool {
	return c.S3Endpoint != "" || c.DynamoDBEndpoint != ""
}

// AuditConfig enables the DynamoDB run audit when RunsTable is set.
type AuditConfig struct {
	RunsTable string
}

func (c AuditConfig) Enabled() bool {
	return c.RunsTable != ""
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables.
//
// Recognised variables:
//   - PROCESSED_PREFIX (default processed/store_sales)
//   - PROCESSED_BUCKET (optional)
//   - RUNS_TABLE (optional; enables the run audit)
//   - AWS_REGION (default us-east-1), AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY
//   - S3_ENDPOINT, S3_USE_PATH_STYLE, DYNAMODB_ENDPOINT
//   - LOG_LEVEL (default info), LOG_FORMAT (default json)
//   - APP_ENV (default production), PORT (default 8080)
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("APP_ENV"),
			Port: v.GetString("PORT"),
		},
		Output: OutputConfig{
			Prefix: strings.Trim(strings.TrimSpace(v.GetString("PROCESSED_PREFIX")), "/"),
			Bucket: strings.TrimSpace(v.GetString("PROCESSED_BUCKET")),
		},
		AWS: AWSConfig{
			Region:           v.GetString("AWS_REGION"),
			AccessKeyID:      v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey:  v.GetString("AWS_SECRET_ACCESS_KEY"),
			S3Endpoint:       strings.TrimSpace(v.GetString("S3_ENDPOINT")),
			S3UsePathStyle:   v.GetBool("S3_USE_PATH_STYLE"),
			DynamoDBEndpoint: strings.TrimSpace(v.GetString("DYNAMODB_ENDPOINT")),
		},
		Audit: AuditConfig{
			RunsTable: strings.TrimSpace(v.GetString("RUNS_TABLE")),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("PORT", "8080")
	v.SetDefault("PROCESSED_PREFIX", "processed/store_sales")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func (c *Config) validate() error {
	if c.Output.Prefix == "" {
		return errors.New("PROCESSED_PREFIX must not be empty")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return errors.New("LOG_FORMAT must be json or console")
	}
	if c.AWS.HasEndpointOverride() && (c.AWS.AccessKeyID == "") != (c.AWS.SecretAccessKey == "") {
		return errors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set together")
	}
	return nil
}
