package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HOST", "PORT", "ALLOW_ORIGINS", "ORDER_HEADER_ROW", "COST_HEADER_ROW", "COST_COLLISION", "MAX_UPLOAD_MB"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "127.0.0.1:8082", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.Equal(t, 2, cfg.OrderHeaderRow)
	assert.Equal(t, 1, cfg.CostHeaderRow)
	assert.Equal(t, "last", cfg.CostCollision)
	assert.Equal(t, 64, cfg.MaxUploadMB)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOW_ORIGINS", "http://a.local, http://b.local")
	t.Setenv("ORDER_HEADER_ROW", "1")
	t.Setenv("COST_HEADER_ROW", "zero")
	t.Setenv("COST_COLLISION", "lowest")

	cfg := Load()
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.AllowOrigins)
	assert.Equal(t, 1, cfg.OrderHeaderRow)
	assert.Equal(t, 1, cfg.CostHeaderRow)
	assert.Equal(t, "lowest", cfg.CostCollision)
}
