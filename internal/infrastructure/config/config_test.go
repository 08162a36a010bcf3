package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PROCESSED_PREFIX", "PROCESSED_BUCKET", "RUNS_TABLE", "AWS_REGION", "S3_ENDPOINT", "DYNAMODB_ENDPOINT", "LOG_LEVEL", "LOG_FORMAT", "PORT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "processed/store_sales", cfg.Output.Prefix)
	assert.Empty(t, cfg.Output.Bucket)
	assert.False(t, cfg.Audit.Enabled())
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.False(t, cfg.AWS.HasEndpointOverride())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "8080", cfg.App.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PROCESSED_PREFIX", "/curated/sales/")
	t.Setenv("PROCESSED_BUCKET", "lake")
	t.Setenv("RUNS_TABLE", "etl-runs")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("S3_USE_PATH_STYLE", "true")
	t.Setenv("AWS_ACCESS_KEY_ID", "minio")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "minio123")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "curated/sales", cfg.Output.Prefix)
	assert.Equal(t, "lake", cfg.Output.Bucket)
	assert.True(t, cfg.Audit.Enabled())
	assert.True(t, cfg.AWS.HasEndpointOverride())
	assert.True(t, cfg.AWS.S3UsePathStyle)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadValidation(t *testing.T) {
	t.Run("prefix of only slashes", func(t *testing.T) {
		t.Setenv("PROCESSED_PREFIX", "//")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown log format", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "xml")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("half of a static credential pair", func(t *testing.T) {
		t.Setenv("DYNAMODB_ENDPOINT", "http://localhost:8000")
		t.Setenv("AWS_ACCESS_KEY_ID", "local")
		t.Setenv("AWS_SECRET_ACCESS_KEY", "")
		_, err := Load()
		assert.Error(t, err)
	})
}
