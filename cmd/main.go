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
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBookingHandler "github.com/mzavt/PWS-SchedulerService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/mzavt/PWS-SchedulerService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/mzavt/PWS-SchedulerService/internal/api/handlers/get_booking"
	getDayBookingsHandler "github.com/mzavt/PWS-SchedulerService/internal/api/handlers/get_day_bookings"
	getPolicyHandler "github.com/mzavt/PWS-SchedulerService/internal/api/handlers/get_policy"
	listBookingsHandler "github.com/mzavt/PWS-SchedulerService/internal/api/handlers/list_bookings"
	materializeSlotsHandler "github.com/mzavt/PWS-SchedulerService/internal/api/handlers/materialize_slots"
	updateBookingStatusHandler "github.com/mzavt/PWS-SchedulerService/internal/api/handlers/update_booking_status"
	updatePolicyHandler "github.com/mzavt/PWS-SchedulerService/internal/api/handlers/update_policy"
	"github.com/mzavt/PWS-SchedulerService/internal/api/middleware"
	"github.com/mzavt/PWS-SchedulerService/internal/config"
	bookingRepo "github.com/mzavt/PWS-SchedulerService/internal/infra/storage/booking"
	policyRepo "github.com/mzavt/PWS-SchedulerService/internal/infra/storage/policy"
	slotRepo "github.com/mzavt/PWS-SchedulerService/internal/infra/storage/slot"
	mailerClient "github.com/mzavt/PWS-SchedulerService/internal/integrations/mailer"
	bookingsService "github.com/mzavt/PWS-SchedulerService/internal/service/bookings"
	policyService "github.com/mzavt/PWS-SchedulerService/internal/service/policy"
	createBookingUC "github.com/mzavt/PWS-SchedulerService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/mzavt/PWS-SchedulerService/internal/usecase/get_available_slots"
	materializeSlotsUC "github.com/mzavt/PWS-SchedulerService/internal/usecase/materialize_slots"
	"github.com/mzavt/PWS-SchedulerService/pkg/dbmetrics"
	"github.com/mzavt/PWS-SchedulerService/pkg/logger"
	"github.com/mzavt/PWS-SchedulerService/pkg/metrics"
	"github.com/mzavt/PWS-SchedulerService/pkg/simpletxmanager"
	"github.com/mzavt/PWS-SchedulerService/pkg/txmanager"
)

// TxManager интерфейс transaction manager, общий для обеих реализаций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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

	log.Info("Starting PWS-SchedulerService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
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

	// Применяем миграции
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set goose dialect: %v", err)
	}
	if err := goose.Up(db, cfg.Database.MigrationsDir); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Migrations applied from %s", cfg.Database.MigrationsDir)

	// Инициализируем клиента сервиса рассылки
	mailer := mailerClient.NewClient(
		cfg.Mailer.URL,
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		log,
	)
	log.Info("Mailer client initialized (url=%s, timeout=%ds)", cfg.Mailer.URL, cfg.Mailer.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		policyRepository  *policyRepo.Repository
		slotRepository    *slotRepo.Repository
		bookingRepository *bookingRepo.Repository
		txMgr             TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		policyRepository = policyRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		policyRepository = policyRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	policySvc := policyService.NewService(policyRepository, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		mailer,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		mailer,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(slotRepository, log)
	materializeSlotsUseCase := materializeSlotsUC.NewUseCase(policySvc, slotRepository, log)

	// Запускаем материализацию слотов
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()

	if cfg.Scheduler.MaterializeOnStart {
		if _, err := materializeSlotsUseCase.Execute(schedulerCtx); err != nil {
			log.Fatal("Initial slot materialization failed: %v", err)
		}
	}

	if cfg.Scheduler.IntervalHours > 0 {
		go runMaterializer(schedulerCtx, materializeSlotsUseCase,
			time.Duration(cfg.Scheduler.IntervalHours)*time.Hour, log)
		log.Info("Slot materializer scheduled every %dh", cfg.Scheduler.IntervalHours)
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getDayBookings := getDayBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getPolicy := getPolicyHandler.NewHandler(policySvc, log)
	updatePolicy := updatePolicyHandler.NewHandler(policySvc, log)
	materializeSlots := materializeSlotsHandler.NewHandler(materializeSlotsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Проверка бронирования по публичной ссылке
	api.HandleFunc("/bookings/{reference}", getBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Auth.AdminToken, log))

	// --- Политика доступности ---
	admin.HandleFunc("/policy", getPolicy.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/policy", updatePolicy.Handle).Methods(http.MethodPut)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Расписание дня ---
	admin.HandleFunc("/schedule", getDayBookings.Handle).Methods(http.MethodGet)

	// --- Материализация слотов ---
	admin.HandleFunc("/slots/materialize", materializeSlots.Handle).Methods(http.MethodPost)

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

	// Останавливаем фоновую материализацию и сбор метрик
	stopScheduler()
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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

// runMaterializer периодически прогоняет материализацию слотов,
// поддерживая скользящий горизонт по мере наступления новых дней
func runMaterializer(ctx context.Context, uc *materializeSlotsUC.UseCase, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := uc.Execute(ctx); err != nil {
				log.Error("Scheduled slot materialization failed: %v", err)
			}
		}
	}
}
