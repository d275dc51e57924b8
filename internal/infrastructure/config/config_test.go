package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validTestConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validTestConfig()

	assert.Equal(t, "fleet-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 8*time.Hour, cfg.JWT.TokenExpiration)
	assert.Equal(t, 1, cfg.Scheduler.RunDay)
	assert.Equal(t, 6, cfg.Scheduler.Hour)
	assert.Equal(t, 0.15, cfg.Payroll.DefaultCommission)
	assert.Equal(t, 587, cfg.Mail.Port)
}

func TestValidate_CommissionFractionBounds(t *testing.T) {
	cfg := validTestConfig()
	assert.NoError(t, cfg.validate())

	cfg.Payroll.DefaultCommission = 15 // percent instead of fraction
	assert.Error(t, cfg.validate())

	cfg.Payroll.DefaultCommission = -0.1
	assert.Error(t, cfg.validate())
}

func TestValidate_SchedulerRunDay(t *testing.T) {
	cfg := validTestConfig()

	cfg.Scheduler.RunDay = 29 // not every month has it
	assert.Error(t, cfg.validate())

	cfg.Scheduler.RunDay = 28
	assert.NoError(t, cfg.validate())
}

func TestValidate_ProductionRequirements(t *testing.T) {
	cfg := validTestConfig()
	cfg.App.Env = "production"

	assert.Error(t, cfg.validate(), "missing jwt secret")

	cfg.JWT.Secret = "short"
	assert.Error(t, cfg.validate(), "short jwt secret")

	cfg.JWT.Secret = "production-secret-at-least-32-bytes!!"
	assert.Error(t, cfg.validate(), "missing db password")

	cfg.Database.Password = "s3cret"
	assert.Error(t, cfg.validate(), "sslmode disable")

	cfg.Database.SSLMode = "require"
	assert.NoError(t, cfg.validate())

	cfg.HTTP.CORSAllowOrigins = []string{"*"}
	assert.Error(t, cfg.validate(), "wildcard cors origin")
}

func TestDSN_EscapesCredentials(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "fleet",
		Password: "p@ss/word",
		DBName:   "fleet",
		SSLMode:  "disable",
	}

	dsn := db.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%2Fword")
	assert.Contains(t, dsn, "sslmode=disable")
}
