package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/grest/greenspace-server/internal/logger"
	"github.com/grest/greenspace-server/internal/model"
	"github.com/grest/greenspace-server/internal/webmap"
)

func init() {
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream live point snapshots until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			wsURL := strings.Replace(apiFlag, "http", "ws", 1) + "/api/points/watch"
			client, err := webmap.Dial(ctx, wsURL, logger.New("greenspacectl"))
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			client.SetOnUpdate(func(markers []model.MapMarker) {
				fmt.Fprintf(os.Stdout, "snapshot: %d point(s)\n", len(markers))
				for _, m := range markers {
					fmt.Fprintf(os.Stdout, "  %s  %s  (%.6f, %.6f)\n", m.ID, m.Name, m.Latitude, m.Longitude)
				}
			})

			if err := client.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
	rootCmd.AddCommand(watchCmd)
}
