package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/skanbot/skanbot/internal/langtool"
	"github.com/skanbot/skanbot/internal/server"
	"github.com/skanbot/skanbot/internal/svcctx"
)

var (
	serveHost        string
	servePort        string
	serveNoContainer bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the skanbot server",
	Long: `Start the skanbot HTTP server.

This starts both the HTTP API server and the LanguageTool container.
When the server shuts down (via Ctrl+C or SIGTERM), LanguageTool is
also stopped.

The server provides:
  - /health    - Basic server health check
  - /ready     - Readiness check (includes LanguageTool status)
  - /recognize - Run the pipeline over an uploaded or local file

Examples:
  skanbot serve                    # Start on default port 8080
  skanbot serve --port 3000        # Start on custom port
  skanbot serve --no-container     # Use an externally managed LanguageTool`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		h, err := getHome()
		if err != nil {
			return err
		}
		cm, err := getConfig()
		if err != nil {
			return err
		}
		cm.WatchConfig()
		cfg := cm.Get()

		if !serveNoContainer {
			mgr, err := langtool.NewDockerManager(langtool.DockerConfig{
				ContainerName: cfg.LangTool.ContainerName,
				Image:         cfg.LangTool.Image,
				HostPort:      cfg.LangTool.Port,
			})
			if err != nil {
				return fmt.Errorf("failed to create languagetool manager: %w", err)
			}
			defer mgr.Close()

			logger.Info("starting LanguageTool")
			if err := mgr.Start(ctx); err != nil {
				return fmt.Errorf("failed to start LanguageTool: %w", err)
			}
			if err := mgr.WaitReady(ctx, 90*time.Second); err != nil {
				return fmt.Errorf("LanguageTool not ready: %w", err)
			}
			logger.Info("LanguageTool is ready", "url", mgr.URL())
			defer func() {
				stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				logger.Info("stopping LanguageTool")
				if err := mgr.Stop(stopCtx); err != nil {
					logger.Error("LanguageTool stop error", "error", err)
				}
			}()
		}

		svc, closeSvc := buildService(cfg, h, logger, os.Stdout)
		defer closeSvc()
		lt := langtool.NewClient(cfg.LangTool.URL, cfg.LangTool.Language, logger)

		port := servePort
		if port == "" {
			port = cfg.Server.Port
		}

		srv, err := server.New(server.Config{
			Host:    serveHost,
			Port:    port,
			Service: svc,
			TempDir: h.TempPath(),
			Services: &svcctx.Services{
				Logger:   logger,
				Home:     h,
				LangTool: lt,
			},
			Logger: logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from config)")
	serveCmd.Flags().BoolVar(&serveNoContainer, "no-container", false, "Do not manage the LanguageTool container")

	rootCmd.AddCommand(serveCmd)
}
