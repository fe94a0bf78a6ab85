package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/dealflow/internal/config"
	"github.com/xavierca1/dealflow/internal/infra/cache"
	"github.com/xavierca1/dealflow/internal/infra/database"
	"github.com/xavierca1/dealflow/internal/infra/http/handlers"
	"github.com/xavierca1/dealflow/internal/infra/integration/crmapi"
	"github.com/xavierca1/dealflow/internal/infra/integration/supabase"
	"github.com/xavierca1/dealflow/internal/infra/logging"
	"github.com/xavierca1/dealflow/internal/infra/mail"
	"github.com/xavierca1/dealflow/internal/infra/queue"
	"github.com/xavierca1/dealflow/internal/infra/session"
	"github.com/xavierca1/dealflow/internal/infra/worker"
	"github.com/xavierca1/dealflow/internal/usecase"
)

var version = "dev"

const (
	sessionCapacity   = 10_000
	leadCacheCapacity = 256
	consumerPrefetch  = 8
	shutdownTimeout   = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("dealflow stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := database.RunMigrations(db)
	if err != nil {
		return err
	}
	logger.Info("database ready", zap.Uint("schema_version", applied))

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		return err
	}
	defer rabbitMQ.Close()

	consumerCh, err := rabbitMQ.ConsumerChannel(consumerPrefetch)
	if err != nil {
		return err
	}

	// 1. Repositories and stores
	draftRepo := database.NewOutreachDraftRepository(db)
	reminderLog := database.NewReminderLogRepository(db)
	sessions := session.NewStore(cfg.SessionTTL, sessionCapacity)

	// 2. Gateways and adapters
	crm := crmapi.NewClient(cfg.CRMAPIURL, cfg.CRMRatePerSec, cfg.CRMRateBurst)
	auth := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	leadCache := cache.NewLeadCache(crm, cfg.LeadCacheTTL, leadCacheCapacity)
	producer := queue.NewProducer(rabbitMQ.Ch)

	var mailer usecase.EmailService
	if cfg.MailEnabled() {
		sender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
		sender.AppURL = cfg.AppURL
		mailer = sender
	} else {
		logger.Warn("MAIL_HOST not set, e-mails disabled")
	}

	// 3. Use cases
	uc := useCases{
		pipeline:  usecase.NewPipelineUseCase(leadCache, sessions),
		create:    usecase.NewCreateLeadUseCase(crm, sessions, leadCache, producer, logger),
		drafts:    usecase.NewLeadDraftUseCase(sessions, nil),
		details:   usecase.NewLeadDetailsUseCase(crm),
		notes:     usecase.NewNotesUseCase(crm, producer, logger),
		reminders: usecase.NewRemindersUseCase(crm),
		outreach:  usecase.NewOutreachUseCase(crm, draftRepo, leadCache, producer, logger),
		auth:      usecase.NewAuthUseCase(auth, cfg.PasswordResetURL),
		notify:    usecase.NewNotifyLeadChangedUseCase(leadCache, producer),
	}
	processEvents := usecase.NewProcessLeadEventUseCase(leadCache, crm, mailer, cfg.CRMServiceToken, logger)

	// 4. HTTP
	router := newRouter(cfg, logger, uc, routerDeps{
		verifier: auth,
		health: handlers.NewHealthHandler(db, rabbitMQ.Conn, map[string]bool{
			"crm_api":  crm.Configured(),
			"supabase": cfg.SupabaseURL != "",
			"mail":     cfg.MailEnabled(),
		}, version),
	})
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// 5. Background work
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("dealflow listening", zap.String("addr", srv.Addr), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return queue.NewWorker(consumerCh, processEvents, logger).Start(gctx, queue.QueueName)
	})

	if mailer != nil && cfg.CRMServiceToken != "" {
		sendReminders := usecase.NewSendRemindersUseCase(crm, reminderLog, mailer, cfg.CRMServiceToken, logger)
		g.Go(func() error {
			worker.NewReminderWorker(sendReminders, cfg.ReminderInterval, logger).Start(gctx)
			return nil
		})
	} else {
		logger.Warn("reminder e-mails disabled: needs MAIL_HOST and CRM_SERVICE_TOKEN")
	}

	err = g.Wait()
	logger.Info("dealflow shut down")
	return err
}
