package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(`
[database]
host = "localhost"
user = "booking"
dbname = "booking"
`)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 7, cfg.Booking.WindowDays)
	assert.Equal(t, 9, cfg.Booking.FirstHour)
	assert.Equal(t, 22, cfg.Booking.LastStartHour)
	assert.Equal(t, 2, cfg.Booking.MaxBookingsPerRoom)
	assert.Equal(t, HistoryRefreshReload, cfg.Booking.HistoryRefresh)
	assert.Equal(t, TransportNone, cfg.Notifications.Transport)
	assert.Equal(t, "host=localhost port=5432 user=booking password= dbname=booking sslmode=disable", cfg.Database.DSN())

	catalog, err := cfg.RoomCatalog()
	require.NoError(t, err)
	assert.Len(t, catalog.All(), 3)
}

func TestParse_Rooms(t *testing.T) {
	cfg, err := Parse(`
[[rooms]]
key = "studio"
name = "Recording Studio"
slot_shape = "timed"

[[rooms]]
key = "cabinet"
name = "Cabinet"
slot_shape = "locker"
locker_count = 10
`)
	require.NoError(t, err)

	catalog, err := cfg.RoomCatalog()
	require.NoError(t, err)

	cabinet, ok := catalog.Get("cabinet")
	require.True(t, ok)
	assert.Equal(t, 10, cabinet.LockerCount)

	_, ok = catalog.Get("meeting")
	assert.False(t, ok)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"hours reversed": `
[booking]
first_hour = 20
last_start_hour = 10`,
		"last start too late": `
[booking]
last_start_hour = 23`,
		"unknown refresh mode": `
[booking]
history_refresh = "push"`,
		"bad timezone": `
[booking]
timezone = "Mars/Olympus"`,
		"http without url": `
[notifications]
transport = "http"`,
		"kafka without brokers": `
[notifications]
transport = "kafka"`,
		"locker room without lockers": `
[[rooms]]
key = "locker"
slot_shape = "locker"`,
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
host = "db"
password = "from-file"
`), 0o600))

	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "redis://cache:6379/1", cfg.Redis.URL)
}
