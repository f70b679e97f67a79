package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/sessionkit/sessionkit/modules/auth"
	"github.com/sessionkit/sessionkit/pkg/config"
	"github.com/sessionkit/sessionkit/pkg/httpserver"
	"github.com/sessionkit/sessionkit/pkg/logger"
	"github.com/sessionkit/sessionkit/pkg/redis"
	"github.com/sessionkit/sessionkit/pkg/requestid"
	"github.com/sessionkit/sessionkit/pkg/session"
	"github.com/sessionkit/sessionkit/pkg/token"
)

type appConfig struct {
	// CORSAllowedOrigins are the browser origins allowed to send the session
	// cookie cross-site.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
}

// demoAccounts is the fixed user directory for the demo deployment. Real
// deployments swap in their own session.Directory.
var demoAccounts = []auth.Account{
	{ID: "1", Username: "juan", Password: "123456"},
	{ID: "2", Username: "maria", Password: "password1"},
}

func main() {
	var (
		appCfg   appConfig
		logCfg   logger.Config
		redisCfg redis.Config
		tokenCfg token.Config
		sessCfg  session.Config
		httpCfg  httpserver.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&logCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&tokenCfg)
	config.MustLoad(&sessCfg)
	config.MustLoad(&httpCfg)

	log := logger.NewFromConfig(logCfg,
		logger.WithAttr(slog.String("service", "sessionkit")),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	if err := run(context.Background(), log, appCfg, redisCfg, tokenCfg, sessCfg, httpCfg); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	log *slog.Logger,
	appCfg appConfig,
	redisCfg redis.Config,
	tokenCfg token.Config,
	sessCfg session.Config,
	httpCfg httpserver.Config,
) error {
	client, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Warn("closing redis client", logger.Error(err))
		}
	}()

	codec, err := token.NewFromConfig(tokenCfg)
	if err != nil {
		return err
	}

	directory, err := auth.NewStaticDirectory(demoAccounts)
	if err != nil {
		return err
	}

	sessions := session.New(
		session.WithCodec(codec),
		session.WithStore(session.NewRedisStore(client)),
		session.WithDirectory(directory),
		session.WithConfig(sessCfg),
		session.WithLogger(log),
	)

	authSvc := auth.NewService(sessions, auth.WithServiceLogger(log))

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   appCfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", requestid.Header},
		AllowCredentials: true,
	}).Handler)

	r.Get("/health", httpserver.HealthCheckHandler(log, redis.Healthcheck(client)))
	r.Mount("/api", authSvc.Router())

	return httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log)).Run(ctx, r)
}
