package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fastygo/tasknotify/internal/config"
)

func TestConnString(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		Name:     "tasks",
		User:     "svc",
		Password: "secret",
		SSLMode:  "require",
	}
	assert.Equal(t, "postgres://svc:secret@db:5432/tasks?sslmode=require", ConnString(cfg))

	cfg.URL = "postgres://other"
	assert.Equal(t, "postgres://other", ConnString(cfg))
}

func TestRunMigrations_Disabled(t *testing.T) {
	assert.NoError(t, RunMigrations(config.DatabaseConfig{}, config.MigrationsConfig{Enabled: false}, nil))
}
