package root

import (
	"context"
	"fmt"

	"focusquest/internal/config"
	"focusquest/internal/engine"
	"focusquest/internal/storage"
)

// localOwner is the fixed identity used by CLI commands; the HTTP server is
// the only multi-account surface.
var localOwner = engine.Owner{ID: "local_user", Name: engine.DefaultName}

func loadConfig() (config.Config, error) {
	path := configPathFlag
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return config.Config{}, err
		}
	}
	return config.Load(path)
}

// openStore builds the configured storage backend.
func openStore(ctx context.Context, cfg config.Config) (storage.Store, func(), error) {
	switch cfg.Backend {
	case "file":
		path := cfg.StorePath
		if path == "" {
			dbPath, err := storage.DefaultDBPath()
			if err != nil {
				return nil, nil, err
			}
			path = dbPath + ".json"
		}
		st, err := storage.NewFileStore(path)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	case "", "sqlite":
		path := cfg.DBPath
		if path == "" {
			var err error
			path, err = storage.DefaultDBPath()
			if err != nil {
				return nil, nil, err
			}
		}
		st, err := storage.OpenSQLiteStore(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	st, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return engine.NewService(st), cleanup, nil
}
