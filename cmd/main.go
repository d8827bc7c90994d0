package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/m04kA/SMC-BarberBookingService/internal/api/handlers/cancel_appointment"
	checkAvailabilityHandler "github.com/m04kA/SMC-BarberBookingService/internal/api/handlers/check_availability"
	completeAppointmentHandler "github.com/m04kA/SMC-BarberBookingService/internal/api/handlers/complete_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-BarberBookingService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-BarberBookingService/internal/api/handlers/get_appointment"
	getAppointmentsHandler "github.com/m04kA/SMC-BarberBookingService/internal/api/handlers/get_appointments"
	getAppointmentsByDateHandler "github.com/m04kA/SMC-BarberBookingService/internal/api/handlers/get_appointments_by_date"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarberBookingService/internal/api/handlers/get_available_slots"
	getClientAppointmentsHandler "github.com/m04kA/SMC-BarberBookingService/internal/api/handlers/get_client_appointments"
	getServicesHandler "github.com/m04kA/SMC-BarberBookingService/internal/api/handlers/get_services"
	"github.com/m04kA/SMC-BarberBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBookingService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-BarberBookingService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-BarberBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberBookingService/internal/infra/storage/memory"
	clientServiceClient "github.com/m04kA/SMC-BarberBookingService/internal/integrations/clientservice"
	appointmentsService "github.com/m04kA/SMC-BarberBookingService/internal/service/appointments"
	createAppointmentUC "github.com/m04kA/SMC-BarberBookingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarberBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BarberBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBookingService/pkg/locker"
	"github.com/m04kA/SMC-BarberBookingService/pkg/logger"
	"github.com/m04kA/SMC-BarberBookingService/pkg/metrics"
	"github.com/m04kA/SMC-BarberBookingService/pkg/txmanager"
)

// appointmentStore хранилище записей, общее для use case и сервиса
type appointmentStore interface {
	createAppointmentUC.AppointmentStore
	appointmentsService.AppointmentStore
}

// catalogStore каталог услуг, общий для use case и сервиса
type catalogStore interface {
	createAppointmentUC.Catalog
	appointmentsService.Catalog
}

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-BarberBookingService...")
	log.Info("Configuration loaded from %s", *configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	var (
		store     appointmentStore
		catalog   catalogStore
		txManager createAppointmentUC.TransactionManager
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store = memory.NewAppointmentStore()
		catalog = memory.NewCatalog(memory.DefaultMenu()...)
		txManager = memory.TxManager{}
		log.Warn("In-memory storage enabled: appointments are lost on restart")

	default:
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

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil)
		}

		store = appointmentRepo.NewRepository(wrappedDB)
		catalog = catalogRepo.NewRepository(wrappedDB)
		txManager = txmanager.NewTransactionManager(wrappedDB)
	}

	// Блокировка дня
	var dateLocker createAppointmentUC.Locker

	switch cfg.Lock.Driver {
	case config.LockDriverRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancelPing()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		dateLocker = locker.NewRedisLocker(redisClient, locker.RedisConfig{
			Prefix:         cfg.Lock.KeyPrefix,
			TTL:            cfg.Lock.TTL(),
			AcquireTimeout: cfg.Lock.AcquireTimeout(),
			RetryInterval:  cfg.Lock.RetryInterval(),
		})
		log.Info("Redis date lock enabled (addr=%s)", cfg.Redis.Addr)

	default:
		dateLocker = locker.NewMemoryLocker(cfg.Lock.AcquireTimeout())
		log.Info("In-process date lock enabled")
	}

	// Справочник клиентов
	var clients createAppointmentUC.ClientDirectory
	if cfg.ClientService.URL != "" {
		clients = clientServiceClient.NewClient(
			cfg.ClientService.URL,
			time.Duration(cfg.ClientService.Timeout)*time.Second,
			log,
		)
		log.Info("Client service integration initialized (url=%s, timeout=%ds)",
			cfg.ClientService.URL, cfg.ClientService.Timeout)
	} else {
		clients = memory.NewClientDirectory()
		log.Warn("Client service URL is empty: any positive client ID is accepted")
	}

	// Инициализируем use cases и сервисы
	var outcomes createAppointmentUC.OutcomeRecorder
	if metricsCollector != nil {
		outcomes = metricsCollector
	}

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		store,
		catalog,
		clients,
		txManager,
		dateLocker,
		outcomes,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store,
		catalog,
		cfg.Schedule.WorkingHours(),
		log,
	)

	appointmentsSvc := appointmentsService.NewService(store, catalog, log)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getAppointments := getAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointmentsByDate := getAppointmentsByDateHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentsSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(appointmentsSvc, log)
	getServices := getServicesHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Меню и расписание ---
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments", getAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/date/{date}", getAppointmentsByDate.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)

	// --- Клиенты ---
	api.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

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
