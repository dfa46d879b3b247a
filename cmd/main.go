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

	addSlotHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/add_slot"
	approveBookingHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/approve_booking"
	cancelBookingHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/create_booking"
	createStationHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/create_station"
	deleteSlotHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/delete_slot"
	deleteStationHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/delete_station"
	getBookingHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/get_booking"
	getStationHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/get_station"
	getUserBookingsHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/get_user_bookings"
	listAllSlotsHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/list_all_slots"
	listPendingBookingsHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/list_pending_bookings"
	listSlotsHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/list_slots"
	listStationsHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/list_stations"
	rejectBookingHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/reject_booking"
	updateBookingHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/update_booking"
	updateSlotHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/update_slot"
	updateStationHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/update_station"
	"github.com/m04kA/EVC-BookingService/internal/api/middleware"
	"github.com/m04kA/EVC-BookingService/internal/config"
	bookingRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/slot"
	stationRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/station"
	notifyServiceClient "github.com/m04kA/EVC-BookingService/internal/integrations/notifyservice"
	userServiceClient "github.com/m04kA/EVC-BookingService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/EVC-BookingService/internal/service/bookings"
	slotsService "github.com/m04kA/EVC-BookingService/internal/service/slots"
	stationsService "github.com/m04kA/EVC-BookingService/internal/service/stations"
	approveBookingUC "github.com/m04kA/EVC-BookingService/internal/usecase/approve_booking"
	createBookingUC "github.com/m04kA/EVC-BookingService/internal/usecase/create_booking"
	updateBookingUC "github.com/m04kA/EVC-BookingService/internal/usecase/update_booking"
	"github.com/m04kA/EVC-BookingService/pkg/dbmetrics"
	"github.com/m04kA/EVC-BookingService/pkg/logger"
	"github.com/m04kA/EVC-BookingService/pkg/metrics"
	"github.com/m04kA/EVC-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/EVC-BookingService/pkg/txmanager"
)

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

	log.Info("Starting EVC-BookingService...")
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

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		stationRepository *stationRepo.Repository
		slotRepository    *slotRepo.Repository
	)

	// Интерфейс для transaction manager (используется сервисами и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		stationRepository = stationRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		stationRepository = stationRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	stationSvc := stationsService.NewService(stationRepository, slotRepository, txMgr, log)
	slotSvc := slotsService.NewService(slotRepository, stationRepository, txMgr, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		stationRepository,
		slotRepository,
		userClient,
		txMgr,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		stationRepository,
		slotRepository,
		txMgr,
		log,
	)
	approveBookingUseCase := approveBookingUC.NewUseCase(
		bookingRepository,
		stationRepository,
		userClient,
		notifyClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	approveBooking := approveBookingHandler.NewHandler(approveBookingUseCase, log)
	rejectBooking := rejectBookingHandler.NewHandler(bookingSvc, log)
	listPendingBookings := listPendingBookingsHandler.NewHandler(bookingSvc, log)

	createStation := createStationHandler.NewHandler(stationSvc, log)
	updateStation := updateStationHandler.NewHandler(stationSvc, log)
	deleteStation := deleteStationHandler.NewHandler(stationSvc, log)
	getStation := getStationHandler.NewHandler(stationSvc, log)
	listStations := listStationsHandler.NewHandler(stationSvc, log)

	addSlot := addSlotHandler.NewHandler(slotSvc, log)
	updateSlot := updateSlotHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)
	listSlots := listSlotsHandler.NewHandler(slotSvc, log)
	listAllSlots := listAllSlotsHandler.NewHandler(slotSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог станций и их слотов
	api.HandleFunc("/stations", listStations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/stations/{stationId}", getStation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/stations/{stationId}/slots", listSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-Role: admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth, middleware.AdminOnly)

	// --- Решения по заявкам ---
	admin.HandleFunc("/bookings/pending", listPendingBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/approve", approveBooking.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPost)

	// --- Управление станциями ---
	admin.HandleFunc("/stations", createStation.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/stations/{stationId}", updateStation.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/stations/{stationId}", deleteStation.Handle).Methods(http.MethodDelete)

	// --- Управление слотами ---
	admin.HandleFunc("/slots", listAllSlots.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/stations/{stationId}/slots", addSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{slotId}", updateSlot.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

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

	// Останавливаем сбор метрик connection pool
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
