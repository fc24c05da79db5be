package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ovehbe/710Launcher-sub000/cli"
	"github.com/ovehbe/710Launcher-sub000/config"
	"github.com/ovehbe/710Launcher-sub000/pkg/iconpack"
	"github.com/ovehbe/710Launcher-sub000/pkg/resolve"
	"github.com/ovehbe/710Launcher-sub000/pkg/theming"
	"github.com/ovehbe/710Launcher-sub000/state"
)

// launcherEnv is what every command works against: the runtime config, the
// opened configuration store and the pack host.
type launcherEnv struct {
	cfg    *config.Config
	store  *state.Store
	host   *iconpack.DirHost
	logger *logrus.Entry
	close  func() error
}

func openEnv(cmd *cobra.Command) (*launcherEnv, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := cli.GetLogger(cmd)

	backend, closeFn, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}
	store, err := state.Open(backend)
	if err != nil {
		_ = closeFn()
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"backend": cfg.Store.Backend,
		"store":   cfg.Store.Path,
		"packs":   cfg.PacksDir,
	}).Debug("Launcher environment opened")

	return &launcherEnv{
		cfg:    cfg,
		store:  store,
		host:   iconpack.NewDirHost(cfg.PacksDir),
		logger: logger,
		close:  closeFn,
	}, nil
}

func openBackend(cfg *config.Config) (state.Backend, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return state.NewMemoryBackend(), noop, nil
	case config.BackendSQLite:
		db, err := state.OpenSQLite(cfg.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return db, db.Close, nil
	default:
		return state.NewFileBackend(cfg.Store.Path), noop, nil
	}
}

// engine builds a resolution engine with every configured pack loaded.
func (e *launcherEnv) engine(ctx context.Context) (*resolve.Engine, []theming.Result, error) {
	engine := resolve.New(e.store, theming.NewDirIcons(e.cfg.IconsDir), resolve.WithDensity(e.cfg.Density))
	results, err := theming.NewLoader(e.store, e.host).LoadInto(ctx, engine)
	if err != nil {
		return nil, nil, err
	}
	return engine, results, nil
}

func (e *launcherEnv) Close() error {
	if e.close == nil {
		return nil
	}
	return e.close()
}

// withEnv runs fn with an opened environment and closes it afterwards.
func withEnv(cmd *cobra.Command, fn func(env *launcherEnv) error) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()
	return fn(env)
}
