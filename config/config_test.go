package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDSNReportaFilasEncontradas(t *testing.T) {
	cfg := &Config{
		DBUser: "nearbiz",
		DBPass: "secreto",
		DBHost: "127.0.0.1",
		DBPort: "3306",
		DBName: "nearbiz",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "nearbiz:secreto@tcp(127.0.0.1:3306)/nearbiz")
	assert.Contains(t, dsn, "parseTime=True")
	// Sin clientFoundRows el driver cuenta filas cambiadas y un UPDATE
	// idempotente termina respondiendo 404.
	assert.Contains(t, dsn, "clientFoundRows=true")
}

func TestParseDuration(t *testing.T) {
	casos := []struct {
		entrada string
		want    time.Duration
	}{
		{"1d", 24 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"3600", time.Hour},
		{"12h", 12 * time.Hour},
		{"30m", 30 * time.Minute},
	}
	for _, c := range casos {
		got, err := parseDuration(c.entrada)
		assert.NoError(t, err, c.entrada)
		assert.Equal(t, c.want, got, c.entrada)
	}

	_, err := parseDuration("xd")
	assert.Error(t, err)
}
