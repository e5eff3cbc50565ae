package main

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/spf13/cobra"

	"github.com/recera/graphlens/internal/watch"
	"github.com/recera/graphlens/pkg/feed"
	"github.com/recera/graphlens/pkg/graph"
)

func newServeCommand() *cobra.Command {
	var (
		addr      string
		watchFile bool
	)

	cmd := &cobra.Command{
		Use:   "serve <graph.json>",
		Short: "Serve the graph as a live snapshot feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}
			snap.Validate()

			var mu sync.Mutex
			server := feed.NewServer()
			server.OnCreateEdge = func(req feed.CreateEdgeRequest) {
				mu.Lock()
				defer mu.Unlock()
				if snap.NodeByID(req.SourceID) == nil || snap.NodeByID(req.TargetID) == nil {
					log.Printf("[serve] rejecting edge %s -> %s: unknown endpoint", req.SourceID, req.TargetID)
					return
				}
				snap.Edges = append(snap.Edges, &graph.Edge{
					Source: req.SourceID,
					Target: req.TargetID,
					Type:   "RELATES_TO",
					UUID:   req.RequestID,
				})
				snap.Validate()
				log.Printf("[serve] created edge %s -> %s", req.SourceID, req.TargetID)
				if err := server.Broadcast(snap); err != nil {
					log.Printf("[serve] broadcast failed: %v", err)
				}
			}

			if err := server.Broadcast(snap); err != nil {
				return err
			}

			if watchFile {
				w, err := watch.New(args[0])
				if err != nil {
					return err
				}
				defer w.Close()
				go func() {
					for next := range w.Snapshots {
						next.Validate()
						mu.Lock()
						snap = next
						mu.Unlock()
						if err := server.Broadcast(next); err != nil {
							log.Printf("[serve] broadcast failed: %v", err)
						}
						log.Printf("[serve] rebroadcast %s (%d nodes, %d edges)", args[0], len(next.Nodes), len(next.Edges))
					}
				}()
				log.Printf("[serve] watching %s", args[0])
			}

			mux := http.NewServeMux()
			mux.HandleFunc("/feed", server.HandleWebSocket)
			log.Printf("[serve] feeding %s on ws://%s/feed", args[0], addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				return fmt.Errorf("feed server failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:7474", "listen address")
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "rebroadcast when the graph file changes")
	return cmd
}
