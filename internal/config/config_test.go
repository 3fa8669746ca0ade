package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "ALLOWED_ORIGINS", "STORE_DRIVER", "JWT_EXPIRY",
		"JWT_ISSUER", "JWT_LEEWAY", "DB_MAX_CONNS", "ASSIGNMENT_HIDE_FOREIGN",
		"APP_TIMEZONE", "AUDIT_RETENTION",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, ":3000", cfg.Address)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "caredesk", cfg.JWTIssuer)
	assert.Equal(t, 30*time.Second, cfg.JWTLeeway)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.True(t, cfg.AssignmentHideForeign)
	assert.Equal(t, time.UTC, cfg.TimeZone)
	assert.Equal(t, 30*24*time.Hour, cfg.AuditRetention)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("JWT_EXPIRY", "90m")
	t.Setenv("DB_MAX_CONNS", "32")
	t.Setenv("ASSIGNMENT_HIDE_FOREIGN", "false")
	t.Setenv("APP_TIMEZONE", "Asia/Jakarta")
	t.Setenv("AUDIT_RETENTION", "0s")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, 90*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, int32(32), cfg.DBMaxConns)
	assert.False(t, cfg.AssignmentHideForeign)
	assert.Equal(t, "Asia/Jakarta", cfg.TimeZone.String())
	assert.Zero(t, cfg.AuditRetention)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "soon")
	t.Setenv("DB_MAX_CONNS", "-4")
	t.Setenv("ASSIGNMENT_HIDE_FOREIGN", "maybe")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.True(t, cfg.AssignmentHideForeign)
}
