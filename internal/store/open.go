package store

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"neonmap/internal/config"
)

// PrincipalOf is the principal the local store checks access against.
func PrincipalOf(cfg config.StoreConfig) Principal {
	return Principal{User: cfg.Owner, Workspaces: cfg.Workspaces, Projects: cfg.Projects}
}

// Open returns the adapter selected by the [store] section.
func Open(cfg config.StoreConfig, log *zap.Logger) (Adapter, error) {
	switch cfg.Driver {
	case config.DriverBadger:
		return OpenBadger(BadgerConfig{Path: cfg.Path, Principal: PrincipalOf(cfg)}, log)
	case config.DriverHTTP:
		if cfg.URL == "" {
			return nil, errors.New("store.url is required for the http driver")
		}
		return NewHTTPClient(cfg.URL, cfg.Token, cfg.Timeout.Duration, log), nil
	}
	return nil, errors.Errorf("unknown store driver %q", cfg.Driver)
}
