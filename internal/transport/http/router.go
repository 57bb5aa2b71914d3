package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mystery-message/internal/application/account"
	"github.com/mystery-message/internal/application/message"
	"github.com/mystery-message/internal/application/suggestion"
	"github.com/mystery-message/internal/config"
	"github.com/mystery-message/internal/transport/http/handler"
	appmiddleware "github.com/mystery-message/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	if cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10 per client IP
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	accountSvc := account.NewService(account.ServiceDeps{
		UserRepo: deps.UserRepo,
		Sender:   deps.Sender,
		Signer:   deps.JWTProvider,
		CodeTTL:  cfg.CodeTTL,
		Policy:   cfg.Verification,
	})
	messageSvc := message.NewService(message.ServiceDeps{
		UserRepo:  deps.UserRepo,
		Events:    deps.Events,
		Exports:   deps.Exports,
		ExportTTL: cfg.ExportURLTTL,
	})
	suggestionSvc := suggestion.NewService(deps.LLM)

	healthH := handler.NewHealthHandler()
	accountH := handler.NewAccountHandler(accountSvc)
	messageH := handler.NewMessageHandler(messageSvc)
	suggestionH := handler.NewSuggestionHandler(suggestionSvc)

	r.Route("/api", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Get("/check-unique-username", accountH.CheckUsername)
		r.With(sensitiveRL.Limit).Post("/sign-up", accountH.SignUp)
		r.With(sensitiveRL.Limit).Post("/verify-code", accountH.VerifyCode)
		r.With(sensitiveRL.Limit).Post("/sign-in", accountH.SignIn)
		r.With(sensitiveRL.Limit).Post("/password-reset/{action}", accountH.PasswordReset)
		r.With(sensitiveRL.Limit).Post("/send-message", messageH.Send)
		r.With(sensitiveRL.Limit).Get("/suggest-messages", suggestionH.Suggest)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/accept-messages", messageH.GetAcceptance)
			r.Post("/accept-messages", messageH.SetAcceptance)
			r.Get("/get-messages", messageH.List)
			r.Delete("/delete-message/{id}", messageH.Delete)
			r.Post("/messages/export", messageH.Export)
		})
	})

	return r
}
