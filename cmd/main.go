package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	actionTokensHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/action_tokens"
	adminReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/admin_reservations"
	availabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/availability"
	healthHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/health"
	selfServiceHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/self_service"
	settingsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/settings"
	submitReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/submit_reservation"
	templatesHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/templates"
	transitionStatusHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/transition_status"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/infra/mail"
	actionTokenRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/actiontoken"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	templateRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/template"
	"github.com/m04kA/SMC-ReservationService/internal/scheduler"
	"github.com/m04kA/SMC-ReservationService/internal/service/actiontokens"
	"github.com/m04kA/SMC-ReservationService/internal/service/notifications"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	templatesService "github.com/m04kA/SMC-ReservationService/internal/service/templates"
	checkAvailabilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/check_availability"
	dailyCleanupUC "github.com/m04kA/SMC-ReservationService/internal/usecase/daily_cleanup"
	selfServiceUC "github.com/m04kA/SMC-ReservationService/internal/usecase/self_service"
	sendReminderUC "github.com/m04kA/SMC-ReservationService/internal/usecase/send_reminder"
	submitReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/submit_reservation"
	transitionStatusUC "github.com/m04kA/SMC-ReservationService/internal/usecase/transition_status"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	settings, err := cfg.BookingSettings()
	if err != nil {
		fmt.Printf("Failed to build booking settings: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ReservationService (business=%s, timezone=%s, slots=%d)...",
		settings.BusinessName, settings.Location, len(settings.TimeSlots))
	log.Info("Configuration loaded from %s", configPath)

	// Метрики нужны use case'ам всегда, endpoint публикуется только если включен
	metricsCollector := metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)

	// Подключаемся к базе данных
	db, err := sqlx.Open("postgres", cfg.Database.DSN())
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

	if cfg.Metrics.Enabled {
		if err := metricsCollector.RegisterDBStats(db.DB, cfg.Database.DBName); err != nil {
			log.Warn("Failed to register database metrics: %v", err)
		}
	}

	// Репозитории и менеджер транзакций
	reservationRepository := reservationRepo.NewRepository(db)
	templateRepository := templateRepo.NewRepository(db)
	actionTokenRepository := actionTokenRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Почта
	mailSender := mail.NewSender(mail.Config{
		Enabled:   cfg.Mail.Enabled,
		Host:      cfg.Mail.Host,
		Port:      cfg.Mail.Port,
		Username:  cfg.Mail.Username,
		Password:  cfg.Mail.Password,
		FromEmail: cfg.Mail.FromEmail,
		FromName:  cfg.Mail.FromName,
		Timeout:   time.Duration(cfg.Mail.Timeout) * time.Second,
	}, log)
	if !cfg.Mail.Enabled {
		log.Warn("Mail delivery is disabled, notifications will only be logged")
	}

	// Сервисы
	tokenSvc := actiontokens.NewService(actiontokens.Config{
		Secret:    cfg.Security.TokenSecret,
		ActionTTL: time.Duration(cfg.Security.ActionTokenTTLMinutes) * time.Minute,
		BulkTTL:   time.Duration(cfg.Security.BulkTokenTTLMinutes) * time.Minute,
		FormTTL:   time.Duration(cfg.Security.FormTokenTTLMinutes) * time.Minute,
	}, actionTokenRepository, log)

	dispatcher := notifications.NewDispatcher(
		templateRepository,
		mailSender,
		settings,
		notifications.Links{PublicURL: cfg.Site.PublicURL, AdminURL: cfg.Site.AdminURL},
		metricsCollector,
		log,
	)

	reservationSvc := reservationsService.NewService(reservationRepository, tokenSvc, settings, log)
	templateSvc := templatesService.NewService(templateRepository, log)

	// Обязательные шаблоны должны существовать до первой заявки
	if restored, err := templateSvc.RestoreDefaults(context.Background()); err != nil {
		log.Warn("Failed to restore default email templates: %v", err)
	} else if len(restored.Inserted) > 0 {
		log.Info("Default email templates created: %v", restored.Inserted)
	}

	// Use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(reservationRepository, settings, log)
	submitReservationUseCase := submitReservationUC.NewUseCase(
		reservationRepository,
		dispatcher,
		txMgr,
		settings,
		metricsCollector,
		log,
	)
	transitionStatusUseCase := transitionStatusUC.NewUseCase(
		reservationRepository,
		tokenSvc,
		txMgr,
		metricsCollector,
		log,
	)
	selfServiceUseCase := selfServiceUC.NewUseCase(reservationRepository, txMgr, settings, metricsCollector, log)
	sendReminderUseCase := sendReminderUC.NewUseCase(reservationRepository, dispatcher, log)

	reminderScheduler := scheduler.New(scheduler.Config{
		Interval:  time.Duration(cfg.Scheduler.CleanupIntervalHours) * time.Hour,
		Workers:   cfg.Scheduler.ReminderWorkers,
		QueueSize: cfg.Scheduler.ReminderQueueSize,
	}, sendReminderUseCase, log)

	dailyCleanupUseCase := dailyCleanupUC.NewUseCase(
		reservationRepository,
		actionTokenRepository,
		reminderScheduler,
		settings,
		metricsCollector,
		log,
	)

	// Handlers
	settingsH := settingsHandler.NewHandler(settings, tokenSvc, log)
	availability := availabilityHandler.NewHandler(checkAvailabilityUseCase, settings.Location, log)
	submitReservation := submitReservationHandler.NewHandler(submitReservationUseCase, tokenSvc, log)
	selfService := selfServiceHandler.NewHandler(selfServiceUseCase, log)
	adminReservations := adminReservationsHandler.NewHandler(reservationSvc, settings.Location, log)
	transitionStatus := transitionStatusHandler.NewHandler(transitionStatusUseCase, log)
	actionTokens := actionTokensHandler.NewHandler(tokenSvc, log)
	templates := templatesHandler.NewHandler(templateSvc, log)
	health := healthHandler.NewHandler(db, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/settings", settingsH.HandleSettings).Methods(http.MethodGet)
	api.HandleFunc("/form-token", settingsH.HandleFormToken).Methods(http.MethodGet)
	api.HandleFunc("/availability", availability.Handle).Methods(http.MethodGet)

	// Отправка заявки ограничена по частоте для каждого IP
	limiter := middleware.NewRateLimiter(
		cfg.Security.SubmitRatePerMinute,
		cfg.Security.SubmitBurst,
		cfg.Security.TrustProxy,
	)
	api.Handle("/reservations", limiter.Middleware(http.HandlerFunc(submitReservation.Handle))).Methods(http.MethodPost)

	// Управление бронью по токену из письма
	api.HandleFunc("/manage", selfService.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/manage", selfService.HandleEdit).Methods(http.MethodPut)
	api.HandleFunc("/manage/cancel", selfService.HandleCancel).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (HTTP Basic)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Security.AdminUsername, cfg.Security.AdminPasswordHash, log))

	// --- Бронирования ---
	// Статичные пути регистрируются раньше /reservations/{id}
	admin.HandleFunc("/reservations", adminReservations.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/stats", adminReservations.HandleStats).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/bulk", transitionStatus.HandleBulk).Methods(http.MethodPost)
	admin.HandleFunc("/reservations/code/{code}", adminReservations.HandleGetByCode).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{id:[0-9]+}", adminReservations.HandleGet).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{id:[0-9]+}", adminReservations.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/reservations/{id:[0-9]+}", adminReservations.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/reservations/{id:[0-9]+}/status", transitionStatus.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/reservations/{id:[0-9]+}/action-tokens", actionTokens.HandleIssue).Methods(http.MethodPost)
	admin.HandleFunc("/action-tokens/bulk", actionTokens.HandleIssueBulk).Methods(http.MethodPost)

	// --- Шаблоны писем ---
	admin.HandleFunc("/templates", templates.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/templates", templates.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/templates/restore", templates.HandleRestore).Methods(http.MethodPost)
	admin.HandleFunc("/templates/stats", templates.HandleStats).Methods(http.MethodGet)
	admin.HandleFunc("/templates/{name}", templates.HandleGet).Methods(http.MethodGet)
	admin.HandleFunc("/templates/{name}", templates.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/templates/{name}", templates.HandleDelete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Фоновые задачи: напоминания и очистка
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	schedulerDone := make(chan struct{})
	if cfg.Scheduler.Enabled {
		go func() {
			defer close(schedulerDone)
			if err := reminderScheduler.Start(schedulerCtx, dailyCleanupUseCase); err != nil {
				log.Error("Scheduler stopped with error: %v", err)
			}
		}()
	} else {
		close(schedulerDone)
		log.Warn("Scheduler is disabled, reminders and cleanup will not run")
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	stopScheduler()
	select {
	case <-schedulerDone:
	case <-shutdownCtx.Done():
		log.Warn("Scheduler did not stop in time")
	}

	log.Info("Server stopped gracefully")
}
