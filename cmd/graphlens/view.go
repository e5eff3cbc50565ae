package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/recera/graphlens/internal/app"
	"github.com/recera/graphlens/internal/config"
	"github.com/recera/graphlens/internal/watch"
	"github.com/recera/graphlens/pkg/engine"
	"github.com/recera/graphlens/pkg/feed"
	"github.com/recera/graphlens/pkg/graph"
	"github.com/recera/graphlens/pkg/layout"
)

func newViewCommand() *cobra.Command {
	var (
		watchFile  bool
		feedURL    string
		use3D      bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "view [graph.json]",
		Short: "Open the interactive viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && feedURL == "" {
				return fmt.Errorf("need a graph file or --feed URL")
			}

			params, err := loadParams(configPath)
			if err != nil {
				return err
			}

			var client *feed.Client
			events := engine.Events{
				OnNodeClick: func(n *graph.Node) {
					log.Printf("[view] node selected: %s (%s)", n.DisplayName(), n.ID)
				},
				OnEdgeClick: func(e *graph.Edge) {
					log.Printf("[view] edge selected: %s -[%s]-> %s", e.Source, e.Type, e.Target)
				},
				OnEdgeCreationRequested: func(sourceID, targetID string) {
					if client == nil {
						log.Printf("[view] edge creation requested: %s -> %s (no feed attached)", sourceID, targetID)
						return
					}
					id, err := client.SendCreateEdge(sourceID, targetID)
					if err != nil {
						log.Printf("[view] failed to request edge: %v", err)
						return
					}
					log.Printf("[view] edge creation requested: %s -> %s (request %s)", sourceID, targetID, id)
				},
			}
			eng := engine.New(params, events)

			snapshots := make(chan *graph.Snapshot, 1)

			if len(args) == 1 {
				snap, err := loadSnapshot(args[0])
				if err != nil {
					return err
				}
				eng.SetSnapshot(snap)

				if watchFile {
					w, err := watch.New(args[0])
					if err != nil {
						return err
					}
					defer w.Close()
					go func() {
						for snap := range w.Snapshots {
							snapshots <- snap
						}
					}()
					log.Printf("[view] watching %s for changes", args[0])
				}
			}

			if feedURL != "" {
				client, err = feed.Dial(feedURL)
				if err != nil {
					return err
				}
				defer client.Close()
				client.OnSnapshot = func(snap *graph.Snapshot) { snapshots <- snap }
				go func() {
					if err := client.Run(); err != nil {
						log.Printf("[view] %v", err)
					}
				}()
				log.Printf("[view] subscribed to %s", feedURL)
			}

			viewer, err := app.NewViewer(eng, app.Options{
				Use3D:     use3D,
				Snapshots: snapshots,
			})
			if err != nil {
				return err
			}
			return viewer.Run(titleFor(args))
		},
	}

	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "reload the graph file when it changes")
	cmd.Flags().StringVar(&feedURL, "feed", "", "subscribe to a snapshot feed (ws://host:port/feed)")
	cmd.Flags().BoolVar(&use3D, "3d", false, "use the 3D scene renderer")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "layout parameter config file")
	return cmd
}

func titleFor(args []string) string {
	if len(args) == 1 {
		return "graphlens - " + args[0]
	}
	return "graphlens"
}

func loadParams(path string) (layout.Params, error) {
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return layout.DefaultParams(), err
		}
	}
	return config.Load(path)
}

func loadSnapshot(path string) (*graph.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return graph.ParseSnapshot(data)
}
