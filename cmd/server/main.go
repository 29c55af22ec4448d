// @title        User Registration API
// @version      1.0
// @description  Account registration, session login and password reset.
// @host         localhost:8080
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/api"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/api/handler"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/ports"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/service"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/infrastructure/db/memory"
	mongostore "github.com/Misterious0572/CognifyzInternshipProject/internal/infrastructure/db/mongo"
	redisstore "github.com/Misterious0572/CognifyzInternshipProject/internal/infrastructure/db/redis"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/infrastructure/hasher"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/infrastructure/notify"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/infrastructure/queue"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/infrastructure/weather"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/pkg/cache"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/pkg/config"
	"github.com/Misterious0572/CognifyzInternshipProject/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "user-registration",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// stores bundles the backing stores and their teardown.
type stores struct {
	accounts ports.AccountRepository
	tokens   ports.ResetTokenRepository
	sessions ports.SessionStore
	checks   []handler.Pinger
	close    func(context.Context)
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	if cfg.StoreDriver == config.StoreMemory {
		log.Warn().Msg("using in-memory stores; data is lost on restart")
		return &stores{
			accounts: memory.NewAccountRepository(),
			tokens:   memory.NewResetTokenRepository(cfg.Auth.ResetTokenTTL),
			sessions: memory.NewSessionStore(cfg.Auth.SessionTTL),
			close:    func(context.Context) {},
		}, nil
	}

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:           cfg.Mongo.URI,
		Database:      cfg.Mongo.Database,
		ResetTokenTTL: cfg.Auth.ResetTokenTTL,
	})
	if err != nil {
		return nil, err
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &stores{
		accounts: mongostore.NewAccountRepository(db),
		tokens:   mongostore.NewResetTokenRepository(db, cfg.Auth.ResetTokenTTL),
		sessions: redisstore.NewSessionStore(rdb, cfg.Auth.SessionTTL),
		checks:   []handler.Pinger{mongostore.Pinger{Client: client}, redisstore.Pinger{Client: rdb}},
		close: func(ctx context.Context) {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("redis close")
			}
			if err := client.Disconnect(ctx); err != nil {
				log.Error().Err(err).Msg("mongo disconnect")
			}
		},
	}, nil
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open stores: %w", err)
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, cfg.Notify.Buffer,
		notify.NewLogNotifier(logger.Component("notifier")), logger.Component("dispatcher"))
	dispatcher.Start(workerCtx)

	auth, err := service.NewAuthService(service.AuthDeps{
		Accounts: st.accounts,
		Tokens:   st.tokens,
		Sessions: st.sessions,
		Hasher:   hasher.NewBcrypt(cfg.Auth.BcryptCost),
		Notifier: dispatcher,
		BaseURL:  cfg.BaseURL,
	}, logger.Component("auth"))
	if err != nil {
		cancelWorkers()
		st.close(ctx)
		return err
	}

	weatherSvc := service.NewWeatherService(weather.NewSimulatedProvider(), cfg.Weather.City, cache.Options{
		TTL:      cfg.Weather.CacheTTL,
		Capacity: cfg.Weather.CacheCapacity,
	}, logger.Component("weather"))

	e := api.NewRouter(api.Deps{
		Auth:    auth,
		Weather: weatherSvc,
		Checks:  st.checks,
		Cookie: handler.CookieConfig{
			Name:   cfg.Auth.SessionCookie,
			Secure: cfg.Production(),
			TTL:    cfg.Auth.SessionTTL,
		},
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		Log:            logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			cancelWorkers()
			st.close(context.Background())
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	cancelWorkers()
	dispatcher.Wait()
	st.close(shutdownCtx)

	log.Info().Msg("server stopped cleanly")
	return nil
}
