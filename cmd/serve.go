package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"github.com/jrh3k5/qrsvg/logging"
	"github.com/jrh3k5/qrsvg/qr"
	"github.com/jrh3k5/qrsvg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generate and export commands over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		b, err := newBridge()
		if err != nil {
			return err
		}

		store, err := server.NewStorage(cfg.Server.Cache)
		if err != nil {
			return err
		}
		if store != nil {
			defer store.Close()
		}

		qrOpts, err := cfg.QROptions()
		if err != nil {
			return err
		}

		svc := server.NewService(b, cfg.Server, store, cacheScope(qrOpts))
		app := server.SetupApp(svc)

		return startServer(app, cfg.Server.Addr())
	},
}

// cacheScope identifies everything that changes the rendered output, so that
// a shared cache never serves documents rendered under another configuration.
func cacheScope(qrOpts qr.Options) string {
	return fmt.Sprintf("%s|%+v|%+v|%t", cfg.Encoder.Backend, qrOpts, cfg.SVGOptions(), cfg.Render.EmbedPayload)
}

// startServer runs app until SIGINT or SIGTERM, then shuts it down gracefully.
func startServer(app *fiber.App, addr string) error {
	listenErr := make(chan error, 1)
	go func() {
		logging.Info("Server listening", "addr", addr)
		listenErr <- app.Listen(addr)
	}()

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigint)

	select {
	case err := <-listenErr:
		return fmt.Errorf("server error: %w", err)
	case <-sigint:
	}

	logging.Warn("Shutdown signal received, closing server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err.Error())
		return err
	}

	logging.Info("Server stopped cleanly")
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
