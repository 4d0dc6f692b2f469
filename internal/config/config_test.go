package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)

	schedule, err := cfg.Schedule.ToDomain()
	require.NoError(t, err)
	for day, daySchedule := range schedule.Days {
		assert.False(t, daySchedule.IsOpen, time.Weekday(day).String())
	}
	assert.False(t, schedule.Break.Active)
	assert.Equal(t, 15, schedule.Policy.SlotIntervalMinutes)
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[server]
http_port = 9090

[storage]
driver = "postgres"

[database]
host = "db"
dbname = "salon"
user = "salon"

[schedule]
slot_interval_minutes = 30
max_horizon_days = 0

[schedule.sunday]
open = "10:00"
close = "14:00"

[schedule.break]
active = false
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Contains(t, cfg.Database.DSN(), "host=db port=5432 user=salon")

	schedule, err := cfg.Schedule.ToDomain()
	require.NoError(t, err)
	assert.True(t, schedule.Days[time.Sunday].IsOpen)
	assert.False(t, schedule.Days[time.Monday].IsOpen)
	assert.False(t, schedule.Break.Active)
	assert.Equal(t, 30, schedule.Policy.SlotIntervalMinutes)
	assert.False(t, schedule.Policy.HasHorizonLimit())
}

func TestLoad_OmittedDaysAreClosed(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[schedule.monday]
open = "09:00"
close = "18:00"

[schedule.tuesday]
open = "09:00"
close = "18:00"

[schedule.wednesday]
open = "09:00"
close = "18:00"

[schedule.thursday]
open = "09:00"
close = "18:00"

[schedule.friday]
open = "10:00"
close = "16:00"
`))
	require.NoError(t, err)

	schedule, err := cfg.Schedule.ToDomain()
	require.NoError(t, err)

	assert.True(t, schedule.Days[time.Monday].IsOpen)
	assert.Equal(t, types.TimeString("16:00"), schedule.Days[time.Friday].CloseTime)
	assert.False(t, schedule.Days[time.Saturday].IsOpen)
	assert.False(t, schedule.Days[time.Sunday].IsOpen)
	assert.False(t, schedule.Break.Active)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, 7070, cfg.Server.HTTPPort)

	t.Setenv("DB_PORT", "abc")
	_, err = Load(writeConfig(t, ""))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "unknown storage driver",
			content: "[storage]\ndriver = \"redis\"\n",
		},
		{
			name:    "remote catalog without url",
			content: "[catalog]\nsource = \"remote\"\n",
		},
		{
			name:    "close before open",
			content: "[schedule.monday]\nopen = \"18:00\"\nclose = \"09:00\"\n",
		},
		{
			name:    "malformed time",
			content: "[schedule.monday]\nopen = \"9:00\"\nclose = \"18:00\"\n",
		},
		{
			name:    "break end before start",
			content: "[schedule.break]\nactive = true\nstart = \"14:00\"\nend = \"13:00\"\n",
		},
		{
			name:    "slot interval too small",
			content: "[schedule]\nslot_interval_minutes = 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
