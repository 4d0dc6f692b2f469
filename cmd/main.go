package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/complete_appointment"
	confirmAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/confirm_appointment"
	deleteAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_availability"
	getCalendarHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_calendar"
	getScheduleHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_schedule"
	getStatisticsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_statistics"
	listAppointmentsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_appointments"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/appointments"
	"github.com/m04kA/SMC-SalonBooking/internal/calendar"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/catalog"
	appointmentStore "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	catalogServiceClient "github.com/m04kA/SMC-SalonBooking/internal/integrations/catalogservice"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	scheduleService "github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	bookAppointmentUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/book_appointment"
	getAvailabilityUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/keymutex"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

// TxManager общий интерфейс для транзакций PostgreSQL и in-memory режима
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		bookingRecorder  bookAppointmentUC.BookingRecorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		bookingRecorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Расписание салона
	schedule, err := cfg.Schedule.ToDomain()
	if err != nil {
		log.Fatal("Invalid schedule: %v", err)
	}
	salonCalendar := calendar.New(schedule, nil)

	// Каталог услуг и сотрудников
	var (
		serviceCatalog appointments.ServiceCatalog
		staffCatalog   appointments.StaffCatalog
	)
	switch cfg.Catalog.Source {
	case config.CatalogRemote:
		client := catalogServiceClient.NewClient(
			cfg.Catalog.URL,
			time.Duration(cfg.Catalog.Timeout)*time.Second,
			log,
		)
		serviceCatalog, staffCatalog = client.Services(), client.Staff()
		log.Info("Catalog client initialized (CatalogService=%s timeout=%ds)", cfg.Catalog.URL, cfg.Catalog.Timeout)
	default:
		fileCatalog, err := catalog.LoadFile(cfg.Catalog.File)
		if err != nil {
			log.Fatal("Failed to load catalog: %v", err)
		}
		serviceCatalog, staffCatalog = fileCatalog.Services(), fileCatalog.Staff()
		log.Info("Catalog loaded from %s", cfg.Catalog.File)
	}

	// Хранилище записей
	var (
		store     appointments.Store
		txManager TxManager
	)
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		// При выключенных метриках обёртка работает как прозрачный прокси
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		store = appointmentStore.NewRepository(wrappedDB)
		txManager = txmanager.NewTransactionManager(wrappedDB)
	default:
		store = appointmentStore.NewMemoryRepository()
		txManager = txmanager.NoopManager{}
		log.Warn("Using in-memory storage, appointments are lost on restart")
	}

	// Блокировки дат внутри процесса
	dateLocks := &keymutex.KeyMutex{}

	// Инициализируем репозиторий и сервисы
	appointmentRepository := appointments.NewRepository(store, serviceCatalog, staffCatalog, nil)

	bookingSvc := bookingsService.NewService(
		appointmentRepository,
		serviceCatalog,
		staffCatalog,
		txManager,
		dateLocks,
		nil,
		log,
	)
	scheduleSvc := scheduleService.NewService(salonCalendar, log)

	// Инициализируем use cases
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		appointmentRepository,
		serviceCatalog,
		staffCatalog,
		salonCalendar,
		txManager,
		dateLocks,
		bookingRecorder,
		cfg.Booking.RecliningStationTag,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		appointmentRepository,
		serviceCatalog,
		staffCatalog,
		salonCalendar,
		cfg.Booking.RecliningStationTag,
		log,
	)

	// Инициализируем handlers
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	listAppointments := listAppointmentsHandler.NewHandler(bookingSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(bookingSvc, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(bookingSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(bookingSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(bookingSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(bookingSvc, log)
	getStatistics := getStatisticsHandler.NewHandler(bookingSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	getCalendar := getCalendarHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Расписание ---
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)

	// --- Статистика ---
	api.HandleFunc("/statistics", getStatistics.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
