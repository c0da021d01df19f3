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

	archiveBookingHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/archive_booking"
	cancelBookingHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/cancel_booking"
	cancellationQuoteHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/cancellation_quote"
	checkAvailabilityHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/check_availability"
	confirmBookingHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/create_booking"
	createEventTemplateHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/create_event_template"
	createVenueHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/create_venue"
	generateOccurrencesHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/generate_occurrences"
	getBookingHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/get_booking"
	getEventTemplateHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/get_event_template"
	getGuestBookingsHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/get_guest_bookings"
	getVenueHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/get_venue"
	getVenueBookingsHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/get_venue_bookings"
	rescheduleBookingHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/reschedule_booking"
	updateLineItemsHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/update_line_items"
	updateVenueHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/update_venue"
	venueMaintenanceHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/venue_maintenance"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueService/internal/config"
	bookingRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/booking"
	eventRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/event"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	guestServiceClient "github.com/m04kA/SMC-VenueService/internal/integrations/guestservice"
	hotelServiceClient "github.com/m04kA/SMC-VenueService/internal/integrations/hotelservice"
	availabilityService "github.com/m04kA/SMC-VenueService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-VenueService/internal/service/bookings"
	cancellationService "github.com/m04kA/SMC-VenueService/internal/service/cancellation"
	eventsService "github.com/m04kA/SMC-VenueService/internal/service/events"
	lifecycleService "github.com/m04kA/SMC-VenueService/internal/service/lifecycle"
	pricingService "github.com/m04kA/SMC-VenueService/internal/service/pricing"
	recurrenceService "github.com/m04kA/SMC-VenueService/internal/service/recurrence"
	venuesService "github.com/m04kA/SMC-VenueService/internal/service/venues"
	cancelBookingUC "github.com/m04kA/SMC-VenueService/internal/usecase/cancel_booking"
	cancellationQuoteUC "github.com/m04kA/SMC-VenueService/internal/usecase/cancellation_quote"
	checkAvailabilityUC "github.com/m04kA/SMC-VenueService/internal/usecase/check_availability"
	confirmBookingUC "github.com/m04kA/SMC-VenueService/internal/usecase/confirm_booking"
	createBookingUC "github.com/m04kA/SMC-VenueService/internal/usecase/create_booking"
	generateOccurrencesUC "github.com/m04kA/SMC-VenueService/internal/usecase/generate_occurrences"
	rescheduleBookingUC "github.com/m04kA/SMC-VenueService/internal/usecase/reschedule_booking"
	updateLineItemsUC "github.com/m04kA/SMC-VenueService/internal/usecase/update_line_items"
	"github.com/m04kA/SMC-VenueService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueService/pkg/logger"
	"github.com/m04kA/SMC-VenueService/pkg/metrics"
	"github.com/m04kA/SMC-VenueService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-VenueService/pkg/txmanager"
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

	log.Info("Starting SMC-VenueService...")
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
	hotelClient := hotelServiceClient.NewClient(
		cfg.HotelService.URL,
		time.Duration(cfg.HotelService.Timeout)*time.Second,
		log,
	)
	guestClient := guestServiceClient.NewClient(
		cfg.GuestService.URL,
		time.Duration(cfg.GuestService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (HotelService=%s timeout=%ds, GuestService=%s timeout=%ds)",
		cfg.HotelService.URL, cfg.HotelService.Timeout, cfg.GuestService.URL, cfg.GuestService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		venueRepository   *venueRepo.Repository
		eventRepository   *eventRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		venueRepository = venueRepo.NewRepository(wrappedDB)
		eventRepository = eventRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		venueRepository = venueRepo.NewRepository(db)
		eventRepository = eventRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Счетчики доменных метрик (nil когда метрики выключены)
	var (
		rejectionCounter    availabilityService.RejectionCounter
		transitionCounter   lifecycleService.TransitionCounter
		creationCounter     createBookingUC.CreationCounter
		cancellationCounter cancelBookingUC.CancellationCounter
		occurrenceCounter   generateOccurrencesUC.OccurrenceCounter
	)
	if cfg.Metrics.Enabled {
		rejectionCounter = metricsCollector
		transitionCounter = metricsCollector
		creationCounter = metricsCollector
		cancellationCounter = metricsCollector
		occurrenceCounter = metricsCollector
	}

	// Инициализируем доменные сервисы
	calculator := pricingService.NewCalculator()
	cancellationPolicy := cancellationService.NewPolicy()
	occurrenceGenerator := recurrenceService.NewGenerator()
	availabilityChecker := availabilityService.NewChecker(bookingRepository, log, rejectionCounter)
	stateMachine := lifecycleService.NewMachine(
		availabilityChecker,
		cancellationPolicy,
		calculator,
		log,
		transitionCounter,
	)

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		venueRepository,
		hotelClient,
		log,
	)
	venueSvc := venuesService.NewService(
		venueRepository,
		hotelClient,
		log,
	)
	eventSvc := eventsService.NewService(
		eventRepository,
		venueRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		venueRepository,
		availabilityChecker,
		calculator,
		guestClient,
		hotelClient,
		txMgr,
		creationCounter,
		log,
	)
	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		bookingRepository,
		venueRepository,
		stateMachine,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		venueRepository,
		stateMachine,
		hotelClient,
		txMgr,
		cancellationCounter,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		venueRepository,
		availabilityChecker,
		stateMachine,
		hotelClient,
		txMgr,
		log,
	)
	updateLineItemsUseCase := updateLineItemsUC.NewUseCase(
		bookingRepository,
		venueRepository,
		stateMachine,
		hotelClient,
		txMgr,
		log,
	)
	generateOccurrencesUseCase := generateOccurrencesUC.NewUseCase(
		eventRepository,
		occurrenceGenerator,
		txMgr,
		cfg.Booking.MaxOccurrences,
		occurrenceCounter,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		venueRepository,
		availabilityChecker,
		log,
	)
	cancellationQuoteUseCase := cancellationQuoteUC.NewUseCase(
		bookingRepository,
		venueRepository,
		cancellationPolicy,
		hotelClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	archiveBooking := archiveBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	updateLineItems := updateLineItemsHandler.NewHandler(updateLineItemsUseCase, log)
	cancellationQuote := cancellationQuoteHandler.NewHandler(cancellationQuoteUseCase, log)
	getGuestBookings := getGuestBookingsHandler.NewHandler(bookingSvc, log)
	getVenueBookings := getVenueBookingsHandler.NewHandler(bookingSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createVenue := createVenueHandler.NewHandler(venueSvc, log)
	getVenue := getVenueHandler.NewHandler(venueSvc, log)
	updateVenue := updateVenueHandler.NewHandler(venueSvc, log)
	venueMaintenance := venueMaintenanceHandler.NewHandler(venueSvc, log)
	createEventTemplate := createEventTemplateHandler.NewHandler(eventSvc, log)
	getEventTemplate := getEventTemplateHandler.NewHandler(eventSvc, log)
	generateOccurrences := generateOccurrencesHandler.NewHandler(generateOccurrencesUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
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

	// Карточка площадки
	api.HandleFunc("/venues/{venueId}", getVenue.Handle).Methods(http.MethodGet)

	// Список площадок отеля
	api.HandleFunc("/hotels/{hotelId}/venues", getVenue.HandleList).Methods(http.MethodGet)

	// Проверка доступности интервала
	api.HandleFunc("/venues/{venueId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Шаблон повторяющегося события и его черновики
	api.HandleFunc("/event-templates/{templateId}", getEventTemplate.Handle).Methods(http.MethodGet)
	api.HandleFunc("/event-templates/{templateId}/occurrences", getEventTemplate.HandleDrafts).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID и по внешнему reference
	protected.HandleFunc("/bookings/reference/{reference}", getBooking.HandleByReference).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Архивация завершенного бронирования (персонал)
	protected.HandleFunc("/bookings/{bookingId}", archiveBooking.Handle).Methods(http.MethodDelete)

	// Подтверждение бронирования (персонал)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Перенос бронирования
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// Замена позиций бронирования
	protected.HandleFunc("/bookings/{bookingId}/items", updateLineItems.Handle).Methods(http.MethodPatch)

	// Предварительный расчет штрафа за отмену
	protected.HandleFunc("/bookings/{bookingId}/cancellation-quote", cancellationQuote.Handle).Methods(http.MethodGet)

	// История бронирований гостя
	protected.HandleFunc("/guests/{guestId}/bookings", getGuestBookings.Handle).Methods(http.MethodGet)

	// --- Управление площадками (для персонала) ---
	// Список бронирований площадки
	protected.HandleFunc("/venues/{venueId}/bookings", getVenueBookings.Handle).Methods(http.MethodGet)

	// Создание и обновление площадки
	protected.HandleFunc("/venues", createVenue.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/venues/{venueId}", updateVenue.Handle).Methods(http.MethodPatch)

	// Окна обслуживания площадки
	protected.HandleFunc("/venues/{venueId}/maintenance-windows", venueMaintenance.HandleAdd).Methods(http.MethodPost)
	protected.HandleFunc("/venues/{venueId}/maintenance-windows/{windowId}", venueMaintenance.HandleRemove).Methods(http.MethodDelete)

	// --- Повторяющиеся события ---
	// Создание шаблона и генерация черновиков серии
	protected.HandleFunc("/event-templates", createEventTemplate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/event-templates/{templateId}/occurrences", generateOccurrences.Handle).Methods(http.MethodPost)

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
