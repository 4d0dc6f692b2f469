package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Драйверы хранилища
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Источники каталога
const (
	CatalogFile   = "file"
	CatalogRemote = "remote"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Storage  StorageConfig  `toml:"storage"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Schedule ScheduleConfig `toml:"schedule"`
	Booking  BookingConfig  `toml:"booking"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type StorageConfig struct {
	Driver string `toml:"driver"` // memory | postgres
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто - только stdout
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type CatalogConfig struct {
	Source  string `toml:"source"`  // file | remote
	File    string `toml:"file"`    // путь к TOML-каталогу
	URL     string `toml:"url"`     // базовый URL CatalogService
	Timeout int    `toml:"timeout"` // секунды
}

// DayConfig часы работы дня недели; пустой open означает выходной
type DayConfig struct {
	Open  string `toml:"open"`
	Close string `toml:"close"`
}

type BreakConfig struct {
	Active bool   `toml:"active"`
	Start  string `toml:"start"`
	End    string `toml:"end"`
}

type ScheduleConfig struct {
	Monday    DayConfig `toml:"monday"`
	Tuesday   DayConfig `toml:"tuesday"`
	Wednesday DayConfig `toml:"wednesday"`
	Thursday  DayConfig `toml:"thursday"`
	Friday    DayConfig `toml:"friday"`
	Saturday  DayConfig `toml:"saturday"`
	Sunday    DayConfig `toml:"sunday"`

	Break BreakConfig `toml:"break"`

	SlotIntervalMinutes   int `toml:"slot_interval_minutes"`
	MinLeadTimeHours      int `toml:"min_lead_time_hours"`
	MaxHorizonDays        int `toml:"max_horizon_days"`        // 0 = без ограничений
	MaxAppointmentsPerDay int `toml:"max_appointments_per_day"` // 0 = без ограничений
}

type BookingConfig struct {
	RecliningStationTag string `toml:"reclining_station_tag"`
}

// Load загружает конфигурацию из TOML-файла и применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию; значения из файла перекрывают ее
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{Driver: StorageMemory},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "salon-booking",
		},
		Catalog: CatalogConfig{
			Source:  CatalogFile,
			File:    "catalog.toml",
			Timeout: 5,
		},
		// Рабочие дни и перерыв задаются только файлом: день без секции закрыт
		Schedule: ScheduleConfig{
			SlotIntervalMinutes:   domain.DefaultSlotIntervalMinutes,
			MinLeadTimeHours:      domain.DefaultMinLeadTimeHours,
			MaxHorizonDays:        domain.DefaultMaxHorizonDays,
			MaxAppointmentsPerDay: domain.DefaultMaxAppointmentsPerDay,
		},
		Booking: BookingConfig{RecliningStationTag: domain.DefaultRecliningStationTag},
	}
}

// applyEnv переопределяет секреты и порты из окружения
func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: DB_PORT=%q is not a number", ErrInvalidConfig, v)
		}
		c.Database.Port = port
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT=%q is not a number", ErrInvalidConfig, v)
		}
		c.Server.HTTPPort = port
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range", ErrInvalidConfig)
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	switch c.Catalog.Source {
	case CatalogFile:
		if c.Catalog.File == "" {
			return fmt.Errorf("%w: catalog.file is required", ErrInvalidConfig)
		}
	case CatalogRemote:
		if c.Catalog.URL == "" {
			return fmt.Errorf("%w: catalog.url is required", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown catalog.source %q", ErrInvalidConfig, c.Catalog.Source)
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}

	schedule, err := c.Schedule.ToDomain()
	if err != nil {
		return err
	}
	if err := schedule.Validate(); err != nil {
		return fmt.Errorf("%w: schedule: %v", ErrInvalidConfig, err)
	}

	return nil
}

// ToDomain конвертирует расписание в domain.Schedule
func (s ScheduleConfig) ToDomain() (domain.Schedule, error) {
	var schedule domain.Schedule

	days := map[time.Weekday]DayConfig{
		time.Sunday:    s.Sunday,
		time.Monday:    s.Monday,
		time.Tuesday:   s.Tuesday,
		time.Wednesday: s.Wednesday,
		time.Thursday:  s.Thursday,
		time.Friday:    s.Friday,
		time.Saturday:  s.Saturday,
	}
	for wd, day := range days {
		if day.Open == "" && day.Close == "" {
			continue
		}
		open, err := types.NewTimeStringFromString(day.Open)
		if err != nil {
			return schedule, fmt.Errorf("%w: schedule.%s.open: %v", ErrInvalidConfig, lower(wd), err)
		}
		closing, err := types.NewTimeStringFromString(day.Close)
		if err != nil {
			return schedule, fmt.Errorf("%w: schedule.%s.close: %v", ErrInvalidConfig, lower(wd), err)
		}
		schedule.Days[wd] = domain.DaySchedule{IsOpen: true, OpenTime: open, CloseTime: closing}
	}

	if s.Break.Active {
		start, err := types.NewTimeStringFromString(s.Break.Start)
		if err != nil {
			return schedule, fmt.Errorf("%w: schedule.break.start: %v", ErrInvalidConfig, err)
		}
		end, err := types.NewTimeStringFromString(s.Break.End)
		if err != nil {
			return schedule, fmt.Errorf("%w: schedule.break.end: %v", ErrInvalidConfig, err)
		}
		schedule.Break = domain.BreakInterval{Active: true, Start: start, End: end}
	}

	schedule.Policy = domain.BookingPolicy{
		SlotIntervalMinutes:   s.SlotIntervalMinutes,
		MinLeadTimeHours:      s.MinLeadTimeHours,
		MaxHorizonDays:        s.MaxHorizonDays,
		MaxAppointmentsPerDay: s.MaxAppointmentsPerDay,
	}

	return schedule, nil
}

func lower(wd time.Weekday) string {
	name := []byte(wd.String())
	name[0] += 'a' - 'A'
	return string(name)
}
