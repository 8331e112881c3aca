package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"neonmap/internal/logging"
	"neonmap/internal/store"
)

func listCmd() *cobra.Command {
	var (
		workspace, project, workItem int64
		personal                     bool
	)
	c := &cobra.Command{
		Use:   "list",
		Short: "List the maps you can open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var f store.Filter
			flags := cmd.Flags()
			if flags.Changed("workspace") {
				f.Workspace = &workspace
			}
			if flags.Changed("project") {
				f.Project = &project
			}
			if flags.Changed("work-item") {
				f.RelatedWorkItem = &workItem
			}
			if flags.Changed("personal") {
				f.Personal = &personal
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

			maps, err := adapter.List(commandContext(cmd), f)
			if err != nil {
				return err
			}
			printMaps(cmd.OutOrStdout(), maps)
			return nil
		},
	}
	c.Flags().Int64Var(&workspace, "workspace", 0, "only maps of this workspace")
	c.Flags().Int64Var(&project, "project", 0, "only maps of this project")
	c.Flags().Int64Var(&workItem, "work-item", 0, "only maps linked to this work item")
	c.Flags().BoolVar(&personal, "personal", false, "only personal (or, with =false, shared) maps")
	return c
}

func printMaps(w io.Writer, maps []store.Summary) {
	if len(maps) == 0 {
		fmt.Fprintln(w, "  No maps yet.")
		fmt.Fprintln(w, "  Run `neonmap new` to start one")
		return
	}

	headers := []string{"ID", "Title", "Nodes", "Edges", "Scope", "Updated"}
	rows := make([][]string, 0, len(maps))
	for _, s := range maps {
		rows = append(rows, []string{
			s.ID.String(),
			s.Title,
			strconv.Itoa(s.Nodes),
			strconv.Itoa(s.Edges),
			scope(s),
			s.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	printTable(w, headers, rows)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %d maps\n", len(maps))
}

func scope(s store.Summary) string {
	switch {
	case s.IsPersonal:
		return "personal"
	case s.Project != nil:
		return "project " + strconv.FormatInt(*s.Project, 10)
	case s.Workspace != nil:
		return "workspace " + strconv.FormatInt(*s.Workspace, 10)
	}
	return "shared"
}

// commandContext is the context a command runs its requests under.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
