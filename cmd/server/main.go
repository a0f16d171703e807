package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/authgate/migrations"
	"github.com/dmitrymomot/authgate/modules/auth"
	"github.com/dmitrymomot/authgate/pkg/config"
	"github.com/dmitrymomot/authgate/pkg/email"
	"github.com/dmitrymomot/authgate/pkg/httpserver"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/otp"
	"github.com/dmitrymomot/authgate/pkg/pg"
	"github.com/dmitrymomot/authgate/pkg/redis"
	"github.com/dmitrymomot/authgate/pkg/session"
)

// appConfig selects between the interchangeable backends.
type appConfig struct {
	OTPStore string `env:"OTP_STORE" envDefault:"postgres"` // postgres or redis
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var logCfg logger.Config
	if err := config.Load(&logCfg); err != nil {
		return fmt.Errorf("load logger config: %w", err)
	}
	log := logger.NewFromConfig(logCfg)
	logger.SetAsDefault(log)

	var (
		appCfg     appConfig
		pgCfg      pg.Config
		emailCfg   email.Config
		sessionCfg session.Config
		otpCfg     otp.Config
		httpCfg    httpserver.Config
	)
	if err := errors.Join(
		config.Load(&appCfg),
		config.Load(&pgCfg),
		config.Load(&emailCfg),
		config.Load(&sessionCfg),
		config.Load(&otpCfg),
		config.Load(&httpCfg),
	); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, migrations.FS, pgCfg, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	healthchecks := []func(context.Context) error{pg.Healthcheck(pool)}

	var challengeStore otp.ChallengeStore
	switch appCfg.OTPStore {
	case "redis":
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return fmt.Errorf("load redis config: %w", err)
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()
		challengeStore = otp.NewRedisStore(client)
		healthchecks = append(healthchecks, redis.Healthcheck(client))
	case "postgres":
		challengeStore = otp.NewPostgresStore(pool)
	default:
		return fmt.Errorf("unknown OTP_STORE %q", appCfg.OTPStore)
	}

	var sender email.EmailSender
	if emailCfg.PostmarkServerToken != "" {
		sender, err = email.NewPostmarkClient(emailCfg)
		if err != nil {
			return fmt.Errorf("postmark client: %w", err)
		}
	} else {
		log.Info("postmark token not set, writing outbound mail to " + emailCfg.DevMailDir)
		sender = email.NewDevSender(emailCfg.DevMailDir)
	}

	otpMgr := otp.NewManager(challengeStore, auth.NewEmailNotifier(sender),
		otp.WithLogger(log),
		otp.WithTTL(otpCfg.TTL),
		otp.WithNotifyTimeout(otpCfg.NotifyTimeout),
	)
	otpMgr.StartSweeper(ctx, otpCfg.SweepInterval)

	sessions, err := session.New(sessionCfg)
	if err != nil {
		return fmt.Errorf("session service: %w", err)
	}

	authSvc := auth.NewService(auth.NewPostgresStorage(pool), otpMgr, sessions,
		auth.WithServiceLogger(log),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/health", httpserver.HealthCheckHandler(ctx, log, healthchecks...))
	r.Mount("/", auth.Router(authSvc))

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
