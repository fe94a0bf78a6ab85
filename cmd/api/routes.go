package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xavierca1/dealflow/internal/config"
	"github.com/xavierca1/dealflow/internal/infra/http/handlers"
	"github.com/xavierca1/dealflow/internal/infra/http/middleware"
	"github.com/xavierca1/dealflow/internal/usecase"
)

type useCases struct {
	pipeline  *usecase.PipelineUseCase
	create    *usecase.CreateLeadUseCase
	drafts    *usecase.LeadDraftUseCase
	details   *usecase.LeadDetailsUseCase
	notes     *usecase.NotesUseCase
	reminders *usecase.RemindersUseCase
	outreach  *usecase.OutreachUseCase
	auth      *usecase.AuthUseCase
	notify    *usecase.NotifyLeadChangedUseCase
}

type routerDeps struct {
	verifier middleware.UserVerifier
	health   *handlers.HealthHandler
}

func newRouter(cfg config.Config, logger *zap.Logger, uc useCases, deps routerDeps) http.Handler {
	pipelineHandler := handlers.NewPipelineHandler(uc.pipeline, logger)
	leadHandler := handlers.NewLeadHandler(uc.create, uc.drafts, uc.details, uc.notes, logger)
	interventionHandler := handlers.NewInterventionHandler(uc.reminders, uc.outreach, logger)
	authHandler := handlers.NewAuthHandler(uc.auth, logger)
	vocabularyHandler := handlers.NewVocabularyHandler(nil)
	webhookHandler := handlers.NewWebhookHandler(cfg.WebhookSecret, uc.notify, logger)
	authenticator := middleware.NewAuthenticator(deps.verifier, logger)
	limiter := middleware.NewRateLimiter(cfg.ClientRatePerSec, cfg.ClientRateBurst)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", deps.health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(limiter.Handler)

		r.Post("/auth/forgot-password", authHandler.ForgotPassword)
		r.Post("/webhooks/crm", webhookHandler.Handle)

		r.Group(func(r chi.Router) {
			r.Use(authenticator.Handler)
			r.Use(middleware.Session)

			r.Get("/auth/user", authHandler.CurrentUser)
			r.Post("/auth/reset-password", authHandler.ResetPassword)

			r.Route("/pipeline", func(r chi.Router) {
				r.Get("/counts", pipelineHandler.Counts)
				r.Get("/leads", pipelineHandler.Leads)
				r.Get("/filters", pipelineHandler.GetFilters)
				r.Put("/filters", pipelineHandler.UpdateFilters)
				r.Delete("/filters", pipelineHandler.ResetFilters)
			})

			r.Route("/leads", func(r chi.Router) {
				r.Post("/individual", leadHandler.CreateIndividual)
				r.Get("/individual/draft", leadHandler.GetDraft)
				r.Put("/individual/draft", leadHandler.SaveDraft)
				r.Delete("/individual/draft", leadHandler.ClearDraft)

				r.Get("/{id}/details", leadHandler.GetDetails)
				r.Post("/{id}/remarks", leadHandler.AddRemark)
				r.Delete("/{id}/remarks/{remarkId}", leadHandler.DeleteRemark)
				r.Post("/{id}/actionables", leadHandler.AddActionable)
				r.Delete("/{id}/actionables/{actionableId}", leadHandler.DeleteActionable)
			})

			r.Route("/interventions", func(r chi.Router) {
				r.Get("/reminders", interventionHandler.TodayReminders)
				r.Put("/{id}/complete", interventionHandler.Complete)
				r.Get("/{id}/outreach-draft", interventionHandler.GetOutreachDraft)
				r.Put("/{id}/outreach-draft", interventionHandler.SaveOutreachDraft)
			})

			r.Get("/vocabulary/sectors", vocabularyHandler.Sectors)
		})
	})

	return r
}
