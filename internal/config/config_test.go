package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
driver = "memory"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 3, cfg.Booking.MaxReservationsPerDay)
	assert.Equal(t, 120, cfg.Booking.MaxDurationMinutes)
	assert.Equal(t, "confirmed", cfg.Booking.InitialStatus)
	assert.Equal(t, "GR", cfg.HolidayService.CountryCode)
	assert.Equal(t, 45, cfg.WeatherService.CacheTTLMinutes)
}

func TestLoad_EnvOverridesPath(t *testing.T) {
	path := writeConfig(t, `
[booking]
max_reservations_per_day = 5
initial_status = "pending"
`)
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("does-not-exist.toml")
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Booking.MaxReservationsPerDay)
	assert.Equal(t, "pending", cfg.Booking.InitialStatus)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown driver", "[database]\ndriver = \"mysql\"\n"},
		{"bad initial status", "[booking]\ninitial_status = \"cancelled\"\n"},
		{"bad timezone", "[booking]\ntimezone = \"Mars/Olympus\"\n"},
		{"notifications without url", "[notification_service]\nenabled = true\n"},
		{"seed user without role", "[[database.seed_users]]\nid = 1\nusername = \"anna\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_SeedUsers(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[database]
driver = "memory"

[[database.seed_users]]
id = 1
username = "anna"
email = "anna@example.com"
role = "student"

[[database.seed_users]]
id = 2
username = "nikos"
phone = "+306900000000"
role = "staff"
`))
	require.NoError(t, err)

	require.Len(t, cfg.Database.SeedUsers, 2)
	assert.Equal(t, "anna@example.com", cfg.Database.SeedUsers[0].Email)
	assert.Equal(t, "staff", cfg.Database.SeedUsers[1].Role)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "rooms", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=rooms sslmode=disable", c.DSN())
}
