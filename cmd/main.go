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

	"github.com/go-redis/redis/v8"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	addProfessionalHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/add_professional"
	cancelBookingHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/create_booking"
	discoverBusinessesHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/discover_businesses"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_booking"
	getBusinessBookingsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_business_bookings"
	getSlotsConfigHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_slots_config"
	updateSlotsConfigHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/update_slots_config"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	businessCache "github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/businesses"
	blockedRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/blocked"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	businessRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/business"
	configRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/migrations"
	professionalRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/professional"
	serviceRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AvailabilityService/internal/jobs"
	bookingsService "github.com/m04kA/SMC-AvailabilityService/internal/service/bookings"
	configService "github.com/m04kA/SMC-AvailabilityService/internal/service/config"
	addProfessionalUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/add_professional"
	createBookingUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_booking"
	discoverBusinessesUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/discover_businesses"
	getAvailableSlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
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

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены). nil-коллектор безопасен для всех потребителей.
	var metricsCollector *metrics.Metrics
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

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(db, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	stopMetricsCh := make(chan struct{})
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	configRepository := configRepo.NewRepository(wrappedDB)
	businessRepository := businessRepo.NewRepository(wrappedDB)
	professionalRepository := professionalRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	blockedRepository := blockedRepo.NewRepository(wrappedDB)

	// Поиск бизнесов идет через Redis, если он включен
	var businessSearcher discoverBusinessesUC.BusinessSearcher = businessRepository
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable, cache will fall back to database: %v", err)
		}
		cancel()
		businessSearcher = businessCache.NewCache(redisClient, businessRepository, cfg.Redis.TTL(), log)
		log.Info("Discovery cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTL())
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		businessRepository,
		log,
	)
	configSvc := configService.NewService(
		configRepository,
		businessRepository,
		professionalRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		professionalRepository,
		serviceRepository,
		bookingRepository,
		blockedRepository,
		configRepository,
		metricsCollector,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		professionalRepository,
		serviceRepository,
		bookingRepository,
		blockedRepository,
		configRepository,
		txMgr,
		metricsCollector,
		cfg.Booking.LeadTimeMinutes,
		log,
	)
	discoverBusinessesUseCase := discoverBusinessesUC.NewUseCase(
		businessSearcher,
		professionalRepository,
		serviceRepository,
		bookingRepository,
		blockedRepository,
		configRepository,
		metricsCollector,
		discoverBusinessesUC.Options{
			MaxConcurrency: cfg.Discovery.MaxConcurrency,
			FetchTimeout:   cfg.Discovery.FetchTimeout(),
		},
		log,
	)
	addProfessionalUseCase := addProfessionalUC.NewUseCase(
		businessRepository,
		professionalRepository,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	discoverBusinesses := discoverBusinessesHandler.NewHandler(discoverBusinessesUseCase, log)
	addProfessional := addProfessionalHandler.NewHandler(addProfessionalUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)
	getSlotsConfig := getSlotsConfigHandler.NewHandler(configSvc, log)
	updateSlotsConfig := updateSlotsConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты специалиста
	api.HandleFunc("/businesses/{businessId}/professionals/{professionalId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Поиск бизнесов по адресу и доступности
	api.HandleFunc("/discovery/businesses", discoverBusinesses.Handle).Methods(http.MethodGet)

	// Действующая конфигурация слотов
	api.HandleFunc("/businesses/{businessId}/slots-config", getSlotsConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Управление бизнесом (для владельца) ---
	protected.HandleFunc("/businesses/{businessId}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/professionals", addProfessional.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/slots-config", updateSlotsConfig.Handle).Methods(http.MethodPut)

	handler := gorillaHandlers.RecoveryHandler(gorillaHandlers.PrintRecoveryStack(true))(
		gorillaHandlers.CORS(
			gorillaHandlers.AllowedOrigins(cfg.Server.AllowedOrigins),
			gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions}),
			gorillaHandlers.AllowedHeaders([]string{"Content-Type", middleware.UserIDHeader, middleware.RequestIDHeader}),
		)(r),
	)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Фоновые задачи
	location, err := cfg.Jobs.Location()
	if err != nil {
		log.Fatal("Invalid jobs timezone: %v", err)
	}
	jobsLog := log.With("component", "jobs")
	scheduler := jobs.NewScheduler(location, jobsLog)
	if cfg.Jobs.CompleteBookingsCron != "" {
		completeJob := jobs.NewCompleteFinishedBookings(bookingRepository, jobsLog)
		err := scheduler.AddJob(
			jobs.CompleteBookingsJobName,
			cfg.Jobs.CompleteBookingsCron,
			time.Duration(cfg.Jobs.TimeoutSeconds)*time.Second,
			func(ctx context.Context) error {
				_, err := completeJob.Run(ctx)
				return err
			},
		)
		if err != nil {
			log.Fatal("Failed to schedule %s: %v", jobs.CompleteBookingsJobName, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	scheduler.Start()
	log.Info("Scheduler started with %d job(s)", scheduler.Len())

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown: %v", err)
		}
		if err := scheduler.Stop(shutdownCtx); err != nil {
			log.Error("Scheduler stop: %v", err)
		}

		close(stopMetricsCh)

		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				log.Error("Redis close: %v", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Service stopped with error: %v", err)
		return
	}

	log.Info("Server stopped gracefully")
}
