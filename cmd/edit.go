package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"neonmap/internal/apperr"
	"neonmap/internal/graph"
	"neonmap/internal/logging"
	"neonmap/internal/store"
	"neonmap/internal/tui"
)

var errMapNotFound = errors.New("map not found")

func newCmd() *cobra.Command {
	var (
		title string
		owner ownerFlags
	)
	c := &cobra.Command{
		Use:   "new",
		Short: "Start a new map; the first save creates it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(tui.Options{Map: graph.NewMap(title), Owner: owner.context(cmd)})
		},
	}
	c.Flags().StringVar(&title, "title", "", "title of the new map")
	owner.register(c)
	return c
}

func editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id>",
		Short: "Open a stored map in the editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(tui.Options{Load: store.ID(args[0])})
		},
	}
}

// ownerFlags bind a new map to a workspace, project or work item.
type ownerFlags struct {
	workspace, project, workItem int64
}

func (o *ownerFlags) register(c *cobra.Command) {
	c.Flags().Int64Var(&o.workspace, "workspace", 0, "workspace the map belongs to")
	c.Flags().Int64Var(&o.project, "project", 0, "project the map is shared with")
	c.Flags().Int64Var(&o.workItem, "work-item", 0, "related work item")
}

func (o *ownerFlags) context(c *cobra.Command) store.OwnerContext {
	var oc store.OwnerContext
	if c.Flags().Changed("workspace") {
		oc.Workspace = &o.workspace
	}
	if c.Flags().Changed("project") {
		oc.Project = &o.project
	}
	if c.Flags().Changed("work-item") {
		oc.RelatedWorkItem = &o.workItem
	}
	return oc
}

func runEditor(opts tui.Options) error {
	log, err := newLogger(logging.SinkFile)
	if err != nil {
		return err
	}
	defer log.Sync()

	adapter, err := openAdapter(log)
	if err != nil {
		return err
	}
	defer adapter.Close()

	opts.Adapter = adapter
	opts.Config = cfg
	opts.Log = log
	m := tui.New(opts)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Error("editor stopped", zap.Error(err))
		return errors.Wrap(err, "run editor")
	}

	if err := m.Err(); err != nil {
		if apperr.IsNotFound(err) || apperr.IsForbidden(err) {
			return errMapNotFound
		}
		return errors.Wrap(err, "load map")
	}
	if m.Editor().Dirty() {
		Subtle.Println("Quit with unsaved changes.")
	}
	if s := m.Session(); s.Existing() {
		Subtle.Printf("Map %s\n", s.ID)
	}
	return nil
}
