package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/queuedesk/queuedesk-go/internal/config"
	"github.com/queuedesk/queuedesk-go/internal/identity"
	"github.com/queuedesk/queuedesk-go/internal/log"
	"github.com/queuedesk/queuedesk-go/internal/navigate"
	"github.com/queuedesk/queuedesk-go/internal/platform"
	"github.com/queuedesk/queuedesk-go/internal/session"
	"github.com/queuedesk/queuedesk-go/internal/transport"
)

// app bundles everything a command needs: configuration, the session
// store, the identity provider and the typed API surface. Commands build
// it lazily so `queuedesk version` works without a config file.
type app struct {
	cfg      *config.Config
	log      *log.Logger
	store    *session.FileStore
	identity *identity.HTTPProvider
	api      *platform.API
}

func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	if v := os.Getenv("QUEUEDESK_CONFIG"); v != "" {
		return v, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".queuedesk", "config.yaml"), nil
}

func newApp() (*app, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger := log.New(log.Config{
		Level:       log.ParseLevel(cfg.LogLevel),
		Format:      log.FormatJSON,
		Output:      log.OutputStderr(),
		ServiceName: "queuedesk",
	})

	sessionPath, err := session.DefaultPath()
	if err != nil {
		return nil, err
	}
	store := session.NewFileStore(sessionPath)

	httpProvider := identity.NewHTTPProvider(cfg.Endpoints.Identity, cfg.RequestTimeout)
	if sess, ok := store.Current(); ok {
		httpProvider.SetTokens(sess.User.Token, sess.RefreshToken)
	}
	provider := identity.NewCachingProvider(httpProvider)

	// A terminal has no navigation surface; the teardown's sign-out and
	// session reset are what matter here.
	broker := transport.NewSessionBroker(cfg.Environment, provider, store, navigate.Nop{}, logger)

	clients, err := transport.NewClients(cfg, broker, logger)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		log:      logger,
		store:    store,
		identity: httpProvider,
		api:      platform.New(clients, logger),
	}, nil
}
