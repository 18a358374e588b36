package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")
	t.Setenv("HARMONY_SEED", "")
	t.Setenv("ANALYSIS_CACHE_ENABLED", "")

	cfg := Load()

	assert := assert.New(t)
	assert.Equal("8080", cfg.Port)
	assert.Equal(int64(16*1024*1024), cfg.MaxUploadBytes)
	assert.Nil(cfg.HarmonySeed)
	assert.False(cfg.CacheEnabled)
	assert.Equal(4, cfg.ScanWorkers)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("HARMONY_SEED", "42")
	t.Setenv("ANALYSIS_CACHE_ENABLED", "true")
	t.Setenv("ENVIRONMENT", "production")

	cfg := Load()

	assert := assert.New(t)
	assert.Equal("9000", cfg.Port)
	assert.Equal(int64(1024), cfg.MaxUploadBytes)
	if assert.NotNil(cfg.HarmonySeed) {
		assert.Equal(int64(42), *cfg.HarmonySeed)
	}
	assert.True(cfg.CacheEnabled)
	assert.True(cfg.IsProduction())
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "lots")
	t.Setenv("HARMONY_SEED", "abc")

	cfg := Load()
	assert.Equal(t, int64(16*1024*1024), cfg.MaxUploadBytes)
	assert.Nil(t, cfg.HarmonySeed)
}
