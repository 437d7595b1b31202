package server

import (
	"context"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/artermis-ops/agency-mcp/internal/gauth"
	"github.com/artermis-ops/agency-mcp/internal/handler"
	"github.com/artermis-ops/agency-mcp/internal/middleware"
	"github.com/artermis-ops/agency-mcp/internal/registry"
	"github.com/artermis-ops/agency-mcp/internal/service"
)

func (s *Server) setupRoutes() (http.Handler, error) {
	cfg := s.cfg
	ctx := context.Background()

	// ─── Services ───────────────────────────────────────────────────────────────
	weatherSvc := service.NewWeatherService(cfg.WeatherBaseURL, cfg.ToolTimeout(), cfg.AdapterRetryAttempts)

	var mailSvc *service.MailService
	var calSvc *service.CalendarService
	if cfg.GoogleCredentialsFile != "" {
		if _, err := os.Stat(cfg.GoogleCredentialsFile); err != nil {
			log.Warn().Err(err).Msg("Google client secrets unreadable - email and calendar tools disabled")
		} else {
			provider, err := gauth.NewProvider(cfg.GoogleCredentialsFile, cfg.GoogleTokenFile, gauth.Scopes...)
			if err != nil {
				log.Warn().Err(err).Msg("Google credential provider unavailable - email and calendar tools disabled")
			} else {
				client := provider.Client(ctx)
				mailSvc, err = service.NewMailService(ctx, client, cfg.AdapterRetryAttempts)
				if err != nil {
					log.Warn().Err(err).Msg("Gmail service unavailable")
				}
				calSvc, err = service.NewCalendarService(ctx, client, cfg.CalendarID, cfg.CalendarTimeZone)
				if err != nil {
					log.Warn().Err(err).Msg("Calendar service unavailable")
				}
			}
		}
	} else {
		log.Warn().Msg("google_credentials_file not set - email and calendar tools will return 503")
	}

	// ─── Registry + dispatch ─────────────────────────────────────────────────────
	catalog, err := registry.New()
	if err != nil {
		return nil, err
	}

	// Nil concrete pointers must not end up as non-nil interfaces.
	var mail handler.MailService
	if mailSvc != nil {
		mail = mailSvc
	}
	var cal handler.CalendarService
	if calSvc != nil {
		cal = calSvc
	}
	tools := handler.NewTools(weatherSvc, mail, cal)

	dispatcher := handler.NewDispatcher(catalog, tools, cfg.ToolTimeout())
	// Descriptors and handlers must stay in lock-step; a mismatch is a
	// programming error caught before the server accepts traffic.
	if err := dispatcher.Verify(); err != nil {
		return nil, err
	}

	registryH := handler.NewRegistryHandler(catalog)
	healthH := handler.NewHealthHandler(cfg.CompanyName, mailSvc != nil, calSvc != nil)

	log.Info().
		Str("company", cfg.CompanyName).
		Int("tools", len(catalog.Names())).
		Bool("mail_enabled", mailSvc != nil).
		Bool("calendar_enabled", calSvc != nil).
		Bool("auth_enabled", cfg.EnableAuth && len(cfg.APIKeys) > 0).
		Msg("service configuration")

	if cfg.EnableAuth && len(cfg.APIKeys) == 0 {
		log.Warn().Msg("WARNING: auth enabled but no API keys configured - all API requests will be rejected")
	}

	// ─── Router ──────────────────────────────────────────────────────────────────
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	r.Use(chiMiddleware.RealIP)

	r.Get("/health", healthH.Health)
	r.Get("/", healthH.Health)

	apiMiddleware := []func(http.Handler) http.Handler{
		middleware.RateLimit(cfg.RateLimitPerMinute),
	}
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		apiMiddleware = append(apiMiddleware, middleware.Auth(cfg.APIKeys, cfg.APIKeyHeader))
	}

	r.Group(func(r chi.Router) {
		for _, m := range apiMiddleware {
			r.Use(m)
		}

		// Discovery answers both verbs with the identical payload.
		r.Get("/v1", registryH.List)
		r.Post("/v1", registryH.List)

		r.Post("/v1/tools/{tool}", dispatcher.Call)
	})

	return r, nil
}
