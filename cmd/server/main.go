// @title                       Gnanalytica Website API
// @version                     1.0
// @description                 Session and client portal API behind the Gnanalytica website.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/gnanalytica/website/internal/api"
	"github.com/gnanalytica/website/internal/api/handler"
	"github.com/gnanalytica/website/internal/api/metrics"
	"github.com/gnanalytica/website/internal/api/middleware"
	"github.com/gnanalytica/website/internal/core/ports"
	"github.com/gnanalytica/website/internal/core/service"
	"github.com/gnanalytica/website/internal/infrastructure/config"
	mongodb "github.com/gnanalytica/website/internal/infrastructure/db/mongo"
	redisdb "github.com/gnanalytica/website/internal/infrastructure/db/redis"
	"github.com/gnanalytica/website/internal/infrastructure/memory"
	"github.com/gnanalytica/website/internal/infrastructure/queue"
	"github.com/gnanalytica/website/internal/infrastructure/seed"
	"github.com/gnanalytica/website/pkg/logger"
	"github.com/gnanalytica/website/web"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
	calendarOrigin  = "https://calendar.google.com"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "gnanalytica-website",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server exited properly")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if cfg.UsingDevSecret() {
		log.Warn().Msg("SESSION_SECRET not set, signing sessions with the development secret")
	}

	dir, err := seed.LoadCatalog(cfg.Content.CatalogFile, bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	for email, ids := range dir.Unknown {
		log.Warn().Str("email", email).Strs("applications", ids).Msg("user granted applications missing from the catalog")
	}
	content, err := seed.LoadSite(cfg.Content.SiteFile)
	if err != nil {
		return err
	}
	log.Info().
		Int("applications", dir.Catalog.Len()).
		Int("users", len(dir.Users)).
		Msg("catalog loaded")

	health := make(map[string]handler.Pinger)

	// --- User directory and audit log ---
	var (
		users ports.UserDirectory = memory.NewUserDirectory(dir.Users)
		audit ports.AuditLog      = memory.NewLogAudit(log)
	)
	if cfg.Mongo.URI != "" {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Error().Err(err).Msg("mongo disconnect")
			}
		}()

		userRepo := mongodb.NewUserDirectory(db)
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			return err
		}
		if err := userRepo.Seed(ctx, dir.Users); err != nil {
			return err
		}
		auditRepo := mongodb.NewAuditRepository(db)
		if err := auditRepo.EnsureIndexes(ctx); err != nil {
			return err
		}

		users, audit = userRepo, auditRepo
		health["mongodb"] = mongodb.Pinger{Client: client}
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongodb user directory and audit log")
	}

	// --- Session revocation ---
	var revoker ports.SessionRevoker
	if cfg.Redis.Addr != "" {
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer client.Close()

		revoker = redisdb.NewRevocationStore(client)
		health["redis"] = redisdb.Pinger{Client: client}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis revocation store")
	} else {
		store := memory.NewRevocationStore()
		go store.RunSweeper(ctx, sweepInterval)
		revoker = store
	}

	// --- Audit pipeline ---
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, audit, metrics.AuditObserver{}, log)
	dispatcher.Start(ctx)

	// --- Services ---
	tokens := service.NewSessionTokens(cfg.Session.Secret, cfg.Session.TTL)
	authService := service.NewAuthService(users, tokens, revoker, dispatcher, log)
	portalService := service.NewPortalService(dir.Catalog, log)
	siteService := service.NewSiteService(content, service.CalendarConfig{
		EmbedURL: cfg.Calendar.EmbedURL,
		Timezone: cfg.Calendar.Timezone,
	})

	limiter := middleware.NewRateLimiter(rate.Limit(cfg.SignIn.Rate), cfg.SignIn.Burst)
	go limiter.Run(ctx)

	var demo []handler.DemoAccount
	if cfg.Content.ShowDemo {
		for _, a := range dir.Demo {
			demo = append(demo, handler.DemoAccount{Label: a.Name, Email: a.Email, Password: a.Password})
		}
	}

	prod := cfg.IsProduction()
	e, err := api.NewRouter(api.Deps{
		Auth:      authService,
		Portal:    portalService,
		Site:      siteService,
		Audit:     dispatcher,
		Limiter:   limiter,
		CSRF:      middleware.NewCSRF(cfg.Session.Secret, prod),
		Cookie:    handler.CookieConfig{Secure: prod},
		Security:  middleware.SecurityConfig{HSTS: prod, FrameSources: []string{calendarOrigin}},
		Demo:      demo,
		Health:    health,
		Templates: web.Templates(),
		Static:    web.Static(),
		Log:       log,
	})
	if err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("audit queue not drained")
	}
	return nil
}
