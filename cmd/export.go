package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"neonmap/internal/apperr"
	"neonmap/internal/config"
	"neonmap/internal/export"
	"neonmap/internal/graph"
	"neonmap/internal/logging"
	"neonmap/internal/store"
)

func exportCmd() *cobra.Command {
	var (
		format   string
		out      string
		selected []string
	)
	c := &cobra.Command{
		Use:   "export <id>",
		Short: "Render a stored map to PNG, JPEG or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			log, err := newLogger(logging.SinkStderr)
			if err != nil {
				return err
			}
			defer log.Sync()
			adapter, err := openAdapter(log)
			if err != nil {
				return err
			}
			defer adapter.Close()

			ctx := commandContext(cmd)
			rec, err := adapter.Load(ctx, store.ID(args[0]))
			if apperr.IsNotFound(err) || apperr.IsForbidden(err) {
				return errMapNotFound
			}
			if err != nil {
				return errors.Wrap(err, "load map")
			}
			m, err := rec.Map()
			if err != nil {
				return errors.Wrap(err, "decode map")
			}

			xcfg := cfg.Export
			if out != "" {
				xcfg.Directory = config.ExpandPath(out)
			}
			path, err := export.NewExporter(xcfg, log).Export(ctx, m, f, graph.NewIDSet(selected...))
			if err != nil {
				return errors.Wrapf(err, "export %s", f)
			}
			Good.Fprintf(cmd.OutOrStdout(), "Exported %s\n", path)
			return nil
		},
	}
	c.Flags().StringVarP(&format, "format", "f", "png", "png, jpeg or pdf")
	c.Flags().StringVarP(&out, "out", "o", "", "directory to write to (default export.directory)")
	c.Flags().StringSliceVar(&selected, "select", nil, "node ids to draw as selected")
	return c
}
