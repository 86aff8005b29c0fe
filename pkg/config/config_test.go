package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, DriverPostgres, cfg.Session.Store)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 5, cfg.Auth.LockoutMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LockoutDuration)
	assert.Equal(t, "hierarchy", cfg.Auth.RoleModel)
	assert.True(t, cfg.Auth.UnassignedSeeCompany)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.True(t, cfg.DB.ForceIPv4)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("SESSION_TTL_HOURS", "24")
	t.Setenv("LOCKOUT_MAX_ATTEMPTS", "3")
	t.Setenv("AUTH_ROLE_MODEL", "simple")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, DriverRedis, cfg.Session.Store)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 3, cfg.Auth.LockoutMaxAttempts)
	assert.Equal(t, "simple", cfg.Auth.RoleModel)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Storage: StorageConfig{Driver: DriverPostgres},
			Session: SessionConfig{Store: DriverPostgres, TTL: time.Hour},
			Auth:    AuthConfig{LockoutMaxAttempts: 5},
		}
	}
	require.NoError(t, valid().validate())

	tests := map[string]func(c *Config){
		"driver desconocido":       func(c *Config) { c.Storage.Driver = "sqlite" },
		"store desconocido":        func(c *Config) { c.Session.Store = "file" },
		"sesiones postgres sin db": func(c *Config) { c.Storage.Driver = DriverMemory },
		"ttl no positivo":          func(c *Config) { c.Session.TTL = 0 },
		"intentos de bloqueo cero": func(c *Config) { c.Auth.LockoutMaxAttempts = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(c)
			assert.Error(t, c.validate())
		})
	}
}

func TestDSN_EscapaCredenciales(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "staffhub", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/staffhub?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
