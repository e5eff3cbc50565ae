package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-preview"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "graphlens",
		Short: "Graphlens - interactive force-directed graph viewer",
		Long: `Graphlens lays out directed multigraphs with a force simulation and
renders them interactively: pan, zoom, select, drag nodes, and create edges
with shift-drag. Snapshots come from a JSON file, a watched file, or a live
websocket feed.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	// Add commands
	rootCmd.AddCommand(newViewCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newTuneCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
