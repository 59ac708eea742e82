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

	addEquipmentHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/add_equipment"
	cancelBookingHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/create_booking"
	createFacilityHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/create_facility"
	decideRequestHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/decide_equipment_request"
	deleteFacilityHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/delete_facility"
	getAvailabilityHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_booking"
	getFacilityHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_facility"
	getFacilityBookingsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_facility_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_user_bookings"
	issueEquipmentHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/issue_equipment"
	listEquipmentHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/list_equipment"
	rescheduleBookingHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/reschedule_booking"
	returnEquipmentHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/return_equipment"
	updateFacilityHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/update_facility"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/config"
	bookingRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/booking"
	courtRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/court"
	equipmentRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/equipment"
	requestRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/equipmentrequest"
	facilityRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/facility"
	availabilityService "github.com/m04kA/SMC-CourtBooking/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-CourtBooking/internal/service/bookings"
	requestsService "github.com/m04kA/SMC-CourtBooking/internal/service/equipmentrequests"
	facilitiesService "github.com/m04kA/SMC-CourtBooking/internal/service/facilities"
	limitsService "github.com/m04kA/SMC-CourtBooking/internal/service/limits"
	"github.com/m04kA/SMC-CourtBooking/internal/service/sharedcourts"
	cancelBookingUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_availability"
	issueEquipmentUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/issue_equipment"
	rescheduleBookingUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/reschedule_booking"
	returnEquipmentUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/return_equipment"
	"github.com/m04kA/SMC-CourtBooking/pkg/auth"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/metrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/mq"
	"github.com/m04kA/SMC-CourtBooking/pkg/tracing"
	"github.com/m04kA/SMC-CourtBooking/pkg/txmanager"
)

// eventPublisher общий интерфейс RabbitMQ и no-op публикатора
type eventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
	Close() error
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

	log.Info("Starting SMC-CourtBooking...")

	location := cfg.Booking.Location()
	log.Info("Facility timezone offset: %+d hours", cfg.Booking.TimezoneOffsetHours)

	// Трейсинг (если включен)
	if cfg.Tracing.Enabled {
		shutdownTracing, err := tracing.Init(context.Background(), tracing.Config{
			ServiceName: cfg.Tracing.ServiceName,
			Environment: cfg.Tracing.Environment,
			Endpoint:    cfg.Tracing.Endpoint,
		})
		if err != nil {
			log.Fatal("Failed to initialize tracing: %v", err)
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				log.Error("Failed to shutdown tracing: %v", err)
			}
		}()
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.Endpoint)
	}

	// Инициализируем метрики (если включены). nil-коллектор безопасен для вызова.
	var metricsCollector *metrics.Metrics
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

	// Публикация событий
	var publisher eventPublisher = mq.NopPublisher{}
	if cfg.Events.Enabled {
		rabbit, err := mq.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = rabbit
		log.Info("Publishing booking events to exchange %s", cfg.Events.Exchange)
	}
	defer publisher.Close()

	// Репозитории
	facilityRepository := facilityRepo.NewRepository(wrappedDB)
	courtRepository := courtRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	equipmentRepository := equipmentRepo.NewRepository(wrappedDB)
	requestRepository := requestRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Сервисы
	resolver := sharedcourts.NewResolver(facilityRepository, courtRepository)
	limits := limitsService.NewService(limitsService.Policy{
		MaxActiveBookings:  cfg.Limits.MaxActiveBookings,
		MaxBookingsPerDay:  cfg.Limits.MaxBookingsPerDay,
		AdvanceBookingDays: cfg.Limits.AdvanceBookingDays,
	}, bookingRepository, location, log)
	availabilitySvc := availabilityService.NewService(facilityRepository, bookingRepository, resolver, txMgr, location, log)
	facilitySvc := facilitiesService.NewService(facilityRepository, courtRepository, bookingRepository, equipmentRepository, txMgr, log)
	bookingSvc := bookingsService.NewService(bookingRepository, requestRepository, log)
	requestSvc := requestsService.NewService(requestRepository, txMgr, log)

	// Use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(availabilitySvc, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		facilityRepository,
		courtRepository,
		resolver,
		bookingRepository,
		equipmentRepository,
		requestRepository,
		limits,
		txMgr,
		publisher,
		metricsCollector,
		location,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		facilityRepository,
		courtRepository,
		resolver,
		txMgr,
		publisher,
		metricsCollector,
		location,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(bookingRepository, requestRepository, txMgr, publisher, metricsCollector, log)
	issueEquipmentUseCase := issueEquipmentUC.NewUseCase(
		requestRepository,
		bookingRepository,
		equipmentRepository,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	returnEquipmentUseCase := returnEquipmentUC.NewUseCase(requestRepository, equipmentRepository, txMgr, publisher, metricsCollector, log)

	// Handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, location, log)
	getFacility := getFacilityHandler.NewHandler(facilitySvc, log)
	createFacility := createFacilityHandler.NewHandler(facilitySvc, log)
	updateFacility := updateFacilityHandler.NewHandler(facilitySvc, log)
	deleteFacility := deleteFacilityHandler.NewHandler(facilitySvc, log)
	listEquipment := listEquipmentHandler.NewHandler(facilitySvc, log)
	addEquipment := addEquipmentHandler.NewHandler(facilitySvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, location, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getFacilityBookings := getFacilityBookingsHandler.NewHandler(bookingSvc, location, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, location, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	decideRequest := decideRequestHandler.NewHandler(requestSvc, log)
	issueEquipment := issueEquipmentHandler.NewHandler(issueEquipmentUseCase, log)
	returnEquipment := returnEquipmentHandler.NewHandler(returnEquipmentUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/facilities/{facilityId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/facilities/{facilityId}", getFacility.Handle).Methods(http.MethodGet)
	api.HandleFunc("/facilities/{facilityId}/equipment", listEquipment.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <jwt>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(auth.NewIssuer(cfg.Auth.JWTSecret), log))

	// --- Площадки (admin) ---
	protected.HandleFunc("/facilities", createFacility.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/facilities/{facilityId}", updateFacility.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/facilities/{facilityId}", deleteFacility.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/facilities/{facilityId}/equipment", addEquipment.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/facilities/{facilityId}/bookings", getFacilityBookings.Handle).Methods(http.MethodGet)

	// --- Инвентарь (staff) ---
	protected.HandleFunc("/equipment-requests/{requestId}/decision", decideRequest.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/equipment-requests/{requestId}/issue", issueEquipment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/equipment-request-items/{itemId}/return", returnEquipment.Handle).Methods(http.MethodPost)

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
