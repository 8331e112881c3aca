// Package cmd holds the neonmap command line.
package cmd

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"neonmap/internal/config"
	"neonmap/internal/logging"
	"neonmap/internal/store"
)

var version = "0.3.0"

var (
	configPath string
	storeFlag  string
	addrFlag   string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "neonmap",
	Short:         "neonmap, mind maps in the terminal",
	Long:          Brand.Sprint("neonmap") + " edits mind maps on a terminal canvas\n" + Subtle.Sprint("Maps live in a local database or behind the REST API"),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlags(c)
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate("neonmap {{ .Version }}\n")
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default "+config.Path()+")")
	flags.StringVar(&storeFlag, "store", "", "database directory, or a REST base URL")
	flags.StringVar(&addrFlag, "addr", "", "listen address for serve")

	rootCmd.AddCommand(
		newCmd(),
		editCmd(),
		listCmd(),
		exportCmd(),
		serveCmd(),
	)
}

// applyFlags lets the command line override the config file.
func applyFlags(c *config.Config) {
	switch {
	case storeFlag == "":
	case strings.HasPrefix(storeFlag, "http://"), strings.HasPrefix(storeFlag, "https://"):
		c.Store.Driver = config.DriverHTTP
		c.Store.URL = storeFlag
	default:
		c.Store.Driver = config.DriverBadger
		c.Store.Path = config.ExpandPath(storeFlag)
	}
	if addrFlag != "" {
		c.Server.Addr = addrFlag
	}
}

// Execute runs the root command and reports a failure on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		Bad.Fprintf(os.Stderr, "neonmap: %v\n", err)
	}
	return err
}

func newLogger(sink logging.Sink) (*zap.Logger, error) {
	log, err := logging.New(cfg.Log, sink)
	if err != nil {
		return nil, err
	}
	return log.With(zap.String("version", version)), nil
}

func openAdapter(log *zap.Logger) (store.Adapter, error) {
	adapter, err := store.Open(cfg.Store, log)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s store", cfg.Store.Driver)
	}
	return adapter, nil
}
