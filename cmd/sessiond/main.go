// Command sessiond runs the session lifecycle service: the HTTP surface of
// the auth module backed by MongoDB, with encrypted sensitive fields and
// bearer-token verification.
package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/notebank/notebank/modules/auth"
	"github.com/notebank/notebank/pkg/authgate"
	"github.com/notebank/notebank/pkg/bearer"
	"github.com/notebank/notebank/pkg/cipher"
	"github.com/notebank/notebank/pkg/config"
	"github.com/notebank/notebank/pkg/httpserver"
	"github.com/notebank/notebank/pkg/logger"
	nbmongo "github.com/notebank/notebank/pkg/mongo"
	"github.com/notebank/notebank/pkg/session"
)

type appConfig struct {
	// CipherKey is the base64-encoded 32-byte master key for field
	// encryption and search hashing.
	CipherKey string `env:"SESSION_CIPHER_KEY,required"`
	Database  string `env:"MONGODB_DATABASE" envDefault:"notebank"`

	HTTP    httpserver.Config
	Mongo   nbmongo.Config
	Bearer  bearer.Config
	Session session.Config
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	_ = config.LoadEnv()

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log := logger.New(
		logger.WithFormat(logger.FormatJSON),
		logger.WithService("sessiond"),
	)

	masterKey, err := base64.StdEncoding.DecodeString(cfg.CipherKey)
	if err != nil {
		return fmt.Errorf("decoding cipher key: %w", err)
	}
	fieldCipher, err := cipher.New(masterKey)
	if err != nil {
		return fmt.Errorf("initializing cipher: %w", err)
	}

	client, err := nbmongo.New(ctx, cfg.Mongo)
	if err != nil {
		return fmt.Errorf("connecting to mongodb: %w", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error("mongodb disconnect failed", slog.Any("error", err))
		}
	}()

	store := session.NewMongoStore(client.Database(cfg.Database))
	if err := store.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensuring session indexes: %w", err)
	}

	manager := session.NewFromConfig(cfg.Session,
		session.WithStore(store),
		session.WithCipher(fieldCipher),
		session.WithLogger(log),
	)

	tokens, err := bearer.New(cfg.Bearer)
	if err != nil {
		return fmt.Errorf("initializing bearer service: %w", err)
	}

	gate := authgate.New(manager, tokens)
	module := auth.NewService(manager, gate, auth.WithLogger(log))

	r := chi.NewRouter()
	r.Get("/health", httpserver.HealthCheckHandler(ctx, log, nbmongo.Healthcheck(client)))
	r.Mount("/auth", module.Handle())

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("session service listening", slog.String("addr", cfg.HTTP.Addr))
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.Info("session service stopped")
		}),
	)

	return srv.Run(ctx, r)
}
