package cmd

import (
	"context"
	"time"

	"github.com/skycast/skycast/internal/config"
	"github.com/skycast/skycast/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	serverCmd  = &cobra.Command{
		Use:   "server",
		Short: "Start the weather dashboard server",
		Long:  `Start the HTTP server that serves normalized weather snapshots, location search, favorites and settings.`,
		RunE:  runServer,
	}
)

func init() {
	serverCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default: ./config.yaml)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()

	log.Info("Starting weather dashboard server",
		zap.String("config_path", configPath),
		zap.Bool("telemetry_enabled", cfg.Telemetry.Enabled),
		zap.Int("server_port", cfg.Server.Port))

	srv := server.NewServer(log, tele)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		log.Error("Server error", zap.Error(err))
		return err
	case <-cmd.Context().Done():
		log.Info("Shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(); err != nil {
			log.Error("Error during server shutdown", zap.Error(err))
			return err
		}

		if tele != nil {
			if err := tele.Shutdown(shutdownCtx); err != nil {
				log.Warn("Error during telemetry shutdown", zap.Error(err))
			}
		}

		log.Info("Server shutdown complete")
		return nil
	}
}
