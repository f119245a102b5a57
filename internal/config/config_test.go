package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8081

[database]
host = "localhost"
user = "postgres"
password = "postgres"
dbname = "availability"

[redis]
addr = ""

[cache]
enabled = true
ttl_seconds = 120

[availability]
slot_granularity_minutes = 15
horizon_days = 14

[booking]
default_timezone = "Europe/Moscow"
default_min_notice_minutes = 30

[logs]
level = "debug"

[metrics]
enabled = true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Availability.SlotGranularityMinutes)
	assert.Equal(t, 14, cfg.Availability.HorizonDays)
	assert.Equal(t, "Europe/Moscow", cfg.Booking.DefaultTimezone)
	assert.Equal(t, 120, int(cfg.Cache.TTL().Seconds()))

	// значения по умолчанию
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Contains(t, cfg.Database.DSN(), "dbname=availability")
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "warn", cfg.Logs.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("REDIS_PASSWORD=from-dotenv\n"), 0o600))
	t.Setenv("REDIS_PASSWORD", "")
	require.NoError(t, os.Unsetenv("REDIS_PASSWORD"))

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Redis.Password)
}

func TestLoad_Errors(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[server\nbroken"))
	assert.Error(t, err)

	t.Setenv("HTTP_PORT", "eighty")
	_, err = Load(writeConfig(t, sampleConfig))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{
			Database: DatabaseConfig{Host: "localhost", DBName: "availability"},
		}
		cfg.applyDefaults()
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "port out of range", mutate: func(c *Config) { c.Server.HTTPPort = 70000 }},
		{name: "no db host", mutate: func(c *Config) { c.Database.Host = "" }},
		{name: "no db name", mutate: func(c *Config) { c.Database.DBName = "" }},
		{name: "idle above open", mutate: func(c *Config) { c.Database.MaxIdleConns = 100 }},
		{name: "negative granularity", mutate: func(c *Config) { c.Availability.SlotGranularityMinutes = -5 }},
		{name: "horizon too long", mutate: func(c *Config) { c.Availability.HorizonDays = 1000 }},
		{name: "unknown timezone", mutate: func(c *Config) { c.Booking.DefaultTimezone = "Mars/Olympus" }},
		{name: "negative notice", mutate: func(c *Config) { c.Booking.DefaultMinNoticeMinutes = -1 }},
		{name: "negative burst", mutate: func(c *Config) { c.RateLimit.Burst = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// chdir меняет рабочую директорию на время теста (аналог t.Chdir из Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
