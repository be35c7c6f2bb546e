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

	addBreakHandler "github.com/planbay/scheduling-service/internal/api/handlers/add_break"
	cancelBookingHandler "github.com/planbay/scheduling-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/planbay/scheduling-service/internal/api/handlers/create_booking"
	createLocationHandler "github.com/planbay/scheduling-service/internal/api/handlers/create_location"
	createResourceHandler "github.com/planbay/scheduling-service/internal/api/handlers/create_resource"
	deactivateResourceHandler "github.com/planbay/scheduling-service/internal/api/handlers/deactivate_resource"
	endBreakHandler "github.com/planbay/scheduling-service/internal/api/handlers/end_break"
	endSessionHandler "github.com/planbay/scheduling-service/internal/api/handlers/end_session"
	getAvailabilityHandler "github.com/planbay/scheduling-service/internal/api/handlers/get_availability"
	getBookingHandler "github.com/planbay/scheduling-service/internal/api/handlers/get_booking"
	getBookingByReferenceHandler "github.com/planbay/scheduling-service/internal/api/handlers/get_booking_by_reference"
	getLocationHandler "github.com/planbay/scheduling-service/internal/api/handlers/get_location"
	getLocationBookingsHandler "github.com/planbay/scheduling-service/internal/api/handlers/get_location_bookings"
	getUtilizationHandler "github.com/planbay/scheduling-service/internal/api/handlers/get_utilization"
	listLocationsHandler "github.com/planbay/scheduling-service/internal/api/handlers/list_locations"
	listResourcesHandler "github.com/planbay/scheduling-service/internal/api/handlers/list_resources"
	setLocationHoursHandler "github.com/planbay/scheduling-service/internal/api/handlers/set_location_hours"
	startSessionHandler "github.com/planbay/scheduling-service/internal/api/handlers/start_session"
	updateBookingStatusHandler "github.com/planbay/scheduling-service/internal/api/handlers/update_booking_status"
	updateLocationHandler "github.com/planbay/scheduling-service/internal/api/handlers/update_location"
	updateResourceHandler "github.com/planbay/scheduling-service/internal/api/handlers/update_resource"
	"github.com/planbay/scheduling-service/internal/api/middleware"
	"github.com/planbay/scheduling-service/internal/config"
	bookingRepo "github.com/planbay/scheduling-service/internal/infra/storage/booking"
	locationRepo "github.com/planbay/scheduling-service/internal/infra/storage/location"
	resourceRepo "github.com/planbay/scheduling-service/internal/infra/storage/resource"
	timeclockRepo "github.com/planbay/scheduling-service/internal/infra/storage/timeclock"
	"github.com/planbay/scheduling-service/internal/integrations/notify"
	bookingsService "github.com/planbay/scheduling-service/internal/service/bookings"
	registryService "github.com/planbay/scheduling-service/internal/service/registry"
	timeclockService "github.com/planbay/scheduling-service/internal/service/timeclock"
	getAvailabilityUC "github.com/planbay/scheduling-service/internal/usecase/get_availability"
	reportUtilizationUC "github.com/planbay/scheduling-service/internal/usecase/report_utilization"
	requestBookingUC "github.com/planbay/scheduling-service/internal/usecase/request_booking"
	"github.com/planbay/scheduling-service/pkg/dbmetrics"
	"github.com/planbay/scheduling-service/pkg/logger"
	"github.com/planbay/scheduling-service/pkg/metrics"
	"github.com/planbay/scheduling-service/pkg/simpletxmanager"
	"github.com/planbay/scheduling-service/pkg/txmanager"
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

	log.Info("Starting scheduling-service...")
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

	// Диспетчер уведомлений: RabbitMQ или заглушка
	var dispatcher notify.Dispatcher
	if cfg.Notifications.Enabled {
		publisher, err := notify.NewPublisher(cfg.Notifications.AMQPURL, cfg.Notifications.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		dispatcher = publisher
		log.Info("Notifications enabled (exchange=%s)", cfg.Notifications.Exchange)
	} else {
		dispatcher = notify.NewNoopDispatcher()
		log.Info("Notifications disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		resourceRepository *resourceRepo.Repository
		locationRepository *locationRepo.Repository
		sessionRepository  *timeclockRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		resourceRepository = resourceRepo.NewRepository(wrappedDB)
		locationRepository = locationRepo.NewRepository(wrappedDB)
		sessionRepository = timeclockRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		resourceRepository = resourceRepo.NewRepository(db)
		locationRepository = locationRepo.NewRepository(db)
		sessionRepository = timeclockRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		dispatcher,
		log,
	)
	registrySvc := registryService.New(
		locationRepository,
		resourceRepository,
		txMgr,
		log,
	)
	timeclockSvc := timeclockService.New(
		sessionRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	requestBookingUseCase := requestBookingUC.NewUseCase(
		bookingRepository,
		resourceRepository,
		locationRepository,
		txMgr,
		dispatcher,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		resourceRepository,
		locationRepository,
		log,
	)

	reportUtilizationUseCase := reportUtilizationUC.NewUseCase(
		bookingRepository,
		resourceRepository,
		locationRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(requestBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingByReference := getBookingByReferenceHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getLocationBookings := getLocationBookingsHandler.NewHandler(bookingSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getUtilization := getUtilizationHandler.NewHandler(reportUtilizationUseCase, log)
	createLocation := createLocationHandler.NewHandler(registrySvc, log)
	updateLocation := updateLocationHandler.NewHandler(registrySvc, log)
	getLocation := getLocationHandler.NewHandler(registrySvc, log)
	listLocations := listLocationsHandler.NewHandler(registrySvc, log)
	setLocationHours := setLocationHoursHandler.NewHandler(registrySvc, log)
	createResource := createResourceHandler.NewHandler(registrySvc, log)
	updateResource := updateResourceHandler.NewHandler(registrySvc, log)
	listResources := listResourcesHandler.NewHandler(registrySvc, log)
	deactivateResource := deactivateResourceHandler.NewHandler(registrySvc, log)
	startSession := startSessionHandler.NewHandler(timeclockSvc, log)
	endSession := endSessionHandler.NewHandler(timeclockSvc, log)
	addBreak := addBreakHandler.NewHandler(timeclockSvc, log)
	endBreak := endBreakHandler.NewHandler(timeclockSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
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

	// Свободные интервалы локации или конкретного ресурса
	api.HandleFunc("/locations/{locationId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют заголовков организации и пользователя)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Поиск бронирования по публичному коду
	protected.HandleFunc("/bookings/reference/{reference}", getBookingByReference.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Смена статуса бронирования
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Локации ---
	// Создание локации
	protected.HandleFunc("/locations", createLocation.Handle).Methods(http.MethodPost)

	// Список локаций организации
	protected.HandleFunc("/locations", listLocations.Handle).Methods(http.MethodGet)

	// Карточка локации с расписанием
	protected.HandleFunc("/locations/{locationId}", getLocation.Handle).Methods(http.MethodGet)

	// Обновление локации
	protected.HandleFunc("/locations/{locationId}", updateLocation.Handle).Methods(http.MethodPatch)

	// Установка недельного расписания локации
	protected.HandleFunc("/locations/{locationId}/hours", setLocationHours.Handle).Methods(http.MethodPut)

	// Список бронирований локации
	protected.HandleFunc("/locations/{locationId}/bookings", getLocationBookings.Handle).Methods(http.MethodGet)

	// Отчёт по загрузке ресурсов локации
	protected.HandleFunc("/locations/{locationId}/utilization", getUtilization.Handle).Methods(http.MethodGet)

	// --- Ресурсы ---
	// Создание ресурса
	protected.HandleFunc("/resources", createResource.Handle).Methods(http.MethodPost)

	// Список ресурсов организации
	protected.HandleFunc("/resources", listResources.Handle).Methods(http.MethodGet)

	// Обновление ресурса
	protected.HandleFunc("/resources/{resourceId}", updateResource.Handle).Methods(http.MethodPatch)

	// Деактивация ресурса
	protected.HandleFunc("/resources/{resourceId}", deactivateResource.Handle).Methods(http.MethodDelete)

	// --- Учёт рабочего времени ---
	// Открытие смены
	protected.HandleFunc("/timeclock/sessions", startSession.Handle).Methods(http.MethodPost)

	// Закрытие смены
	protected.HandleFunc("/timeclock/sessions/{sessionId}/end", endSession.Handle).Methods(http.MethodPatch)

	// Добавление перерыва
	protected.HandleFunc("/timeclock/sessions/{sessionId}/breaks", addBreak.Handle).Methods(http.MethodPost)

	// Закрытие открытого перерыва
	protected.HandleFunc("/timeclock/sessions/{sessionId}/breaks/end", endBreak.Handle).Methods(http.MethodPatch)

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
