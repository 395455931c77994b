package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hirotalab/cms-server/internal/api"
	"github.com/hirotalab/cms-server/internal/config"
	"github.com/hirotalab/cms-server/internal/metrics"
	"github.com/hirotalab/cms-server/internal/storage"
	"github.com/hirotalab/cms-server/internal/storage/drive"
	"github.com/hirotalab/cms-server/internal/storage/memory"
)

var (
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CMS HTTP server",
	Long: `Start the CMS HTTP server and begin accepting requests.

Configuration comes from environment variables. When GOOGLE_DRIVE_FOLDER_ID
is unset the server runs against an in-memory store, which is only useful
for local development.

Examples:
  # Start with configuration from env vars
  server serve

  # Start on a specific host and port
  server serve --host 127.0.0.1 --port 9090

  # Start with debug logging
  server serve --log-level debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 8080)")
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Flags override env
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Msg("starting CMS server")

	metrics.Init(Version, GitCommit, BuildDate)

	objects, err := newObjectStore(cfg, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(cfg, logger, objects),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	shutdown(server, logger)
	return nil
}

func newObjectStore(cfg config.Config, logger zerolog.Logger) (storage.ObjectStore, error) {
	if cfg.Storage.DriveFolderID == "" {
		logger.Warn().Msg("GOOGLE_DRIVE_FOLDER_ID not set; using in-memory store (contents are lost on restart)")
		return memory.New(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	store, err := drive.New(ctx, cfg.Storage.DriveFolderID, cfg.Storage.ServiceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("drive store init: %w", err)
	}
	logger.Info().Str("folder", cfg.Storage.DriveFolderID).Msg("drive store ready")
	return store, nil
}

func shutdown(server *http.Server, logger zerolog.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
