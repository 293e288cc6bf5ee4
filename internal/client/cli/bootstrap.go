package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/psychicstar/internal/client/config"
	"github.com/dmitrijs2005/psychicstar/internal/client/controller"
	"github.com/dmitrijs2005/psychicstar/internal/client/generator"
	"github.com/dmitrijs2005/psychicstar/internal/client/mailer"
	"github.com/dmitrijs2005/psychicstar/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/psychicstar/internal/client/repositories/session"
	"github.com/dmitrijs2005/psychicstar/internal/client/repositories/users"
	"github.com/dmitrijs2005/psychicstar/internal/client/repositories/verifications"
	"github.com/dmitrijs2005/psychicstar/internal/client/services"
	"github.com/dmitrijs2005/psychicstar/internal/cryptox"
	"github.com/dmitrijs2005/psychicstar/internal/logging"
)

func newGenerator(ctx context.Context, c *config.Config) (generator.Generator, error) {
	switch c.Generator {
	case generator.KindGemini:
		return generator.NewGemini(ctx, c.GeminiAPIKey, c.GeminiModel)
	case generator.KindMock, "":
		return generator.NewMock(c.MockLatency), nil
	default:
		return nil, fmt.Errorf("unknown generator %q", c.Generator)
	}
}

func newMailer(c *config.Config, log logging.Logger) (mailer.Dispatcher, error) {
	switch c.Mailer {
	case mailer.KindSMTP:
		return mailer.NewSMTPDispatcher(mailer.SMTPConfig{
			Host:     c.SMTPHost,
			Port:     c.SMTPPort,
			Username: c.SMTPUsername,
			Password: c.SMTPPassword,
			From:     c.SMTPFrom,
		})
	case mailer.KindLog, "":
		return mailer.NewLogDispatcher(log), nil
	default:
		return nil, fmt.Errorf("unknown mailer %q", c.Mailer)
	}
}

// Bootstrap wires storage, services and the controller described by c into a
// ready-to-run App. The returned close function releases the storage backend.
func Bootstrap(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, metadata.CloseFunc, error) {
	hasher, err := cryptox.NewHasher(cryptox.Scheme(c.HasherScheme), c.HasherSalt)
	if err != nil {
		return nil, nil, err
	}
	if hasher.Degraded() {
		log.Warn(ctx, "secure digest unavailable, credentials are stored base64-encoded", "scheme", hasher.Scheme())
	}

	gen, err := newGenerator(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	mail, err := newMailer(c, log)
	if err != nil {
		return nil, nil, err
	}

	store, closeStore, err := metadata.Open(ctx, metadata.Options{
		Backend:        c.StorageBackend,
		DSN:            c.StorageDSN,
		S3Bucket:       c.S3Bucket,
		S3Prefix:       c.S3Prefix,
		S3Region:       c.S3Region,
		S3BaseEndpoint: c.S3Endpoint,
		S3AccessKey:    c.S3AccessKey,
		S3SecretKey:    c.S3SecretKey,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s storage: %w", c.StorageBackend, err)
	}
	log.Info(ctx, "storage opened", "backend", c.StorageBackend)

	userRepo := users.NewBlobRepository(store, log)
	ledger := services.NewVerificationLedger(verifications.NewBlobRepository(store, log))

	var app *App
	ctrl := controller.New(controller.Deps{
		Auth:        services.NewAuthService(userRepo, ledger, mail, hasher, log, c.AuthDelay),
		Accounts:    services.NewAccountService(userRepo),
		Readings:    services.NewReadingService(userRepo, gen),
		Session:     session.NewMetadataRepository(store),
		Logger:      log,
		IdleTimeout: c.IdleTimeout,
		OnExpire:    func() { app.Expired() },
	})
	app = NewApp(ctrl, in, out)

	return app, closeStore, nil
}
