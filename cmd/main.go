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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	availableEmployeeHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/available_employee"
	cancelBookingHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/cancel_booking"
	checkSlotHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/check_slot"
	createBookingHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_booking"
	getEmployeeBookingsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_employee_bookings"
	getSalonSettingsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_salon_settings"
	listSlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/list_slots"
	nearestSlotHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/nearest_slot"
	rescheduleBookingHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/update_booking_status"
	updateSalonSettingsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/update_salon_settings"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	slotsCache "github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/slots"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/catalog"
	employeeRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/employee"
	holidayRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/holiday"
	settingsRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/settings"
	availabilityService "github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-AvailabilityService/internal/service/bookings"
	settingsService "github.com/m04kA/SMC-AvailabilityService/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_booking"
	rescheduleBookingUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// slotsStore кэш слотов, общий для движка доступности и сервиса настроек
type slotsStore interface {
	availabilityService.SlotsCache
	settingsService.SalonCache
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены); nil коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.Wrap(db, metricsCollector)
	wrappedDB.CollectPoolStats(15*time.Second, stopCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш слотов: Redis, если задан адрес, иначе память процесса
	var cache slotsStore
	switch {
	case !cfg.Cache.Enabled:
		cache = slotsCache.NopCache{}
		log.Info("Slots cache disabled")

	case cfg.Redis.Addr != "":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		cache = slotsCache.NewRedisCache(redisClient, cfg.Cache.TTL())
		log.Info("Slots cache: redis at %s, ttl=%s", cfg.Redis.Addr, cfg.Cache.TTL())

	default:
		cache = slotsCache.NewMemoryCache(cfg.Cache.TTL())
		log.Info("Slots cache: in-memory, ttl=%s", cfg.Cache.TTL())
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	employeeRepository := employeeRepo.NewRepository(wrappedDB)
	holidayRepository := holidayRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(
		settingsRepository,
		cache,
		metricsCollector,
		settingsService.Config{
			DefaultTimezone:         cfg.Booking.DefaultTimezone,
			DefaultMinNoticeMinutes: cfg.Booking.DefaultMinNoticeMinutes,
		},
		log,
	)
	availabilitySvc := availabilityService.NewService(
		catalogRepository,
		employeeRepository,
		holidayRepository,
		settingsSvc,
		bookingRepository,
		cache,
		metricsCollector,
		availabilityService.Config{
			SlotGranularityMinutes: cfg.Availability.SlotGranularityMinutes,
			HorizonDays:            cfg.Availability.HorizonDays,
		},
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		employeeRepository,
		settingsSvc,
		availabilitySvc,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilitySvc,
		settingsSvc,
		txMgr,
		metricsCollector,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		availabilitySvc,
		settingsSvc,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	listSlots := listSlotsHandler.NewHandler(availabilitySvc, log)
	nearestSlot := nearestSlotHandler.NewHandler(availabilitySvc, log)
	availableEmployee := availableEmployeeHandler.NewHandler(availabilitySvc, log)
	checkSlot := checkSlotHandler.NewHandler(availabilitySvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getEmployeeBookings := getEmployeeBookingsHandler.NewHandler(bookingSvc, log)
	getSalonSettings := getSalonSettingsHandler.NewHandler(settingsSvc, log)
	updateSalonSettings := updateSalonSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации, с ограничением частоты)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerSecond,
			cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.IdleTTLSeconds)*time.Second,
		)
		go limiter.RunCleanup(time.Minute, stopCh)
		public.Use(limiter.Middleware)
		log.Info("Rate limit enabled: %.1f rps, burst=%d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// --- Доступность ---
	public.HandleFunc("/salons/{salonId}/services/{serviceId}/slots",
		listSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/salons/{salonId}/services/{serviceId}/nearest-slot",
		nearestSlot.Handle).Methods(http.MethodGet)
	public.HandleFunc("/salons/{salonId}/services/{serviceId}/available-employee",
		availableEmployee.Handle).Methods(http.MethodGet)
	public.HandleFunc("/employees/{employeeId}/slot-check",
		checkSlot.Handle).Methods(http.MethodGet)

	// Настройки салона
	public.HandleFunc("/salons/{salonId}/settings", getSalonSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{kind}/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{kind}/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{kind}/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{kind}/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// Расписание сотрудника на день (оба вида бронирований)
	protected.HandleFunc("/employees/{employeeId}/bookings", getEmployeeBookings.Handle).Methods(http.MethodGet)

	// --- Управление салоном ---
	protected.HandleFunc("/salons/{salonId}/settings", updateSalonSettings.Handle).Methods(http.MethodPut)

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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи (статистика пула, очистка rate limiter)
	close(stopCh)

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
