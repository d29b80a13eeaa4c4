package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/recipr/internal/config"
	"github.com/VoxDroid/recipr/internal/logging"
	"github.com/VoxDroid/recipr/internal/publish"
	"github.com/VoxDroid/recipr/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a publish target over HTTP",
	Long: `Serve a publish target over HTTP so other recipr instances can publish with --remote.
  recipr serve --addr :8080 --root /srv/scripts`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := server.DefaultConfig()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		cfg.AllowedOrigins, _ = cmd.Flags().GetStringSlice("cors-origin")
		root, _ := cmd.Flags().GetString("root")
		if root == "" {
			var err error
			if root, err = config.PublishRoot(); err != nil {
				return err
			}
		}
		srv := server.New(cfg, publish.NewOsPublisher(root))

		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}
		ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
		defer stop()
		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "serving %s on %s\n", root, cfg.Addr)

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}
		logging.Info().Msg("shutting down publish server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().StringSlice("cors-origin", nil, "Origins allowed to publish from a browser (repeatable)")
	serveCmd.Flags().String("root", "", "Directory scripts are published under (default $RECIPR_PUBLISH_ROOT)")
	rootCmd.AddCommand(serveCmd)
}
