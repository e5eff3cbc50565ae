package main

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/recera/graphlens/internal/config"
	"github.com/recera/graphlens/internal/tui"
	"github.com/recera/graphlens/pkg/layout"
)

func newTuneCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Edit layout parameters interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				var err error
				path, err = config.DefaultPath()
				if err != nil {
					return err
				}
			}
			params, err := config.Load(path)
			if err != nil {
				return err
			}

			model := tui.New(params, func(p layout.Params) {
				// Persist on every applied edit so a viewer started
				// afterwards picks the change up.
				if err := config.Save(path, p); err != nil {
					log.Printf("[tune] failed to save: %v", err)
				}
			})

			final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			if err != nil {
				return fmt.Errorf("tuner failed: %w", err)
			}
			if m, ok := final.(tui.Model); ok {
				if err := config.Save(path, m.Params()); err != nil {
					return err
				}
			}
			log.Printf("[tune] saved %s", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "layout parameter config file")
	return cmd
}
