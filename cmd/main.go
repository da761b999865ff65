package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	cancelBookingHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/get_booking"
	getShopBookingsHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/get_shop_bookings"
	getShopHoursHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/get_shop_hours"
	getUserBookingsHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/get_user_bookings"
	updateBookingStatusHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-ShopBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ShopBooking/internal/config"
	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/booking"
	catalogClient "github.com/m04kA/SMC-ShopBooking/internal/integrations/catalog"
	bookingsService "github.com/m04kA/SMC-ShopBooking/internal/service/bookings"
	shopsService "github.com/m04kA/SMC-ShopBooking/internal/service/shops"
	createBookingUC "github.com/m04kA/SMC-ShopBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-ShopBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ShopBooking/migrations"
	"github.com/m04kA/SMC-ShopBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
	"github.com/m04kA/SMC-ShopBooking/pkg/metrics"
	"github.com/m04kA/SMC-ShopBooking/pkg/migrator"
	"github.com/m04kA/SMC-ShopBooking/pkg/txmanager"
)

const (
	defaultConfigPath = "config.toml"
	poolStatsInterval = 15 * time.Second
	limiterSweepEvery = time.Minute
)

func main() {
	configPath := defaultConfigPath
	if p := os.Getenv(config.EnvPrefix + "CONFIG"); p != "" {
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

	log.Info("Starting SMC-ShopBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbRecorder       dbmetrics.Recorder
	)
	stopCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
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

	// Накатываем миграции
	if cfg.Database.AutoMigrate {
		m, err := migrator.New(db, migrations.FS, ".", log)
		if err != nil {
			log.Fatal("Failed to init migrator: %v", err)
		}
		if err := m.Up(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Все запросы идут через обёртку; без метрик она просто проксирует в *sql.DB
	wrappedDB := dbmetrics.Wrap(db, dbRecorder)
	if cfg.Metrics.Enabled {
		wrappedDB.CollectPoolStats(poolStatsInterval, stopCh)
		log.Info("Database metrics collection started")
	}

	// Инициализируем клиент каталога магазинов
	catalog := catalogClient.NewClient(
		cfg.Catalog.URL,
		cfg.Catalog.APIKey,
		time.Duration(cfg.Catalog.Timeout)*time.Second,
		log,
	)
	log.Info("Catalog client initialized (url=%s, timeout=%ds)", cfg.Catalog.URL, cfg.Catalog.Timeout)

	// Правила записи
	rules := domain.BookingRules{
		AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
		MinNoticeMinutes:   cfg.Booking.MinNoticeMinutes,
		DefaultHours:       cfg.Booking.DefaultHours(),
		Location:           cfg.Booking.Location(),
	}
	log.Info("Booking rules: advance=%dd, notice=%dmin, default hours %s-%s, tz=%s",
		rules.AdvanceBookingDays, rules.MinNoticeMinutes,
		rules.DefaultHours.Opening, rules.DefaultHours.Closing, rules.Location)

	// Репозитории и транзакции
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, catalog, txMgr, rules, log)
	shopSvc := shopsService.NewService(catalog, rules.DefaultHours, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalog,
		txMgr,
		rules,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalog,
		rules,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getShopBookings := getShopBookingsHandler.NewHandler(bookingSvc, log)
	getShopHours := getShopHoursHandler.NewHandler(shopSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	if cfg.Auth.JWTSecret == "" {
		log.Warn("auth.jwt_secret is empty: trusting %s header, do not use in production", middleware.UserIDHeader)
	}
	auth := middleware.NewAuth(cfg.Auth.JWTSecret, log)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные времена начала для услуги на дату
	api.HandleFunc("/shops/{shopId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Часы работы магазина
	api.HandleFunc("/shops/{shopId}/hours", getShopHours.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Middleware)

	// --- Бронирования ---
	// Создание бронирования (с ограничением частоты на пользователя)
	createRoute := http.Handler(http.HandlerFunc(createBooking.Handle))
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
		limiter.StartCleanup(limiterSweepEvery, stopCh)
		createRoute = limiter.Middleware(createRoute)
		log.Info("Rate limit on booking creation: %.2f rps, burst %d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	protected.Handle("/bookings", createRoute).Methods(http.MethodPost)

	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Для владельцев магазинов ---
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/shops/{shopId}/bookings", getShopBookings.Handle).Methods(http.MethodGet)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи (метрики пула, очистка лимитеров)
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
