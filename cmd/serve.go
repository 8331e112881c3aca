package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"neonmap/internal/config"
	"neonmap/internal/logging"
	"neonmap/internal/server"
	"neonmap/internal/store"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the local database over the REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Store.Driver != config.DriverBadger {
				return errors.Errorf("serve needs the %s driver, not %s", config.DriverBadger, cfg.Store.Driver)
			}
			log, err := newLogger(logging.SinkStderr)
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := store.OpenBadger(store.BadgerConfig{Path: cfg.Store.Path, Principal: store.PrincipalOf(cfg.Store)}, log)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(db, cfg.Server, store.PrincipalOf(cfg.Store), log)
			if err := srv.ListenAndServe(ctx); err != nil {
				return err
			}
			log.Info("server stopped", zap.String("addr", cfg.Server.Addr))
			return nil
		},
	}
}
