package cli

import (
	"github.com/spf13/cobra"

	"github.com/beadgame/beadgraph/server"
)

func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout server",
		Long:  `Serve runs the beadgraph HTTP API. Games are created and advanced over REST and live entirely in memory; frames are fetched as JSON or SVG.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			srv := server.New(server.Config{
				Addr:   cfg.Server.Addr,
				Logger: logger,
				Params: cfg.Physics,
				Width:  cfg.Viewport.Width,
				Height: cfg.Viewport.Height,
			})
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides config)")
	return cmd
}
