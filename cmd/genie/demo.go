package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/genielabs/genie-admin/config"
	"github.com/genielabs/genie-admin/pkg/server"
)

const shutdownTimeout = 10 * time.Second

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the demo admin API backed by generated fixtures",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runDemo(cmd.Context(), cfg)
	},
}

func runDemo(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := server.NewDemoBackend(cfg)
	if err != nil {
		return err
	}
	appState, err := server.NewAppState(cfg, backend)
	if err != nil {
		return err
	}
	srv := server.Create(appState)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("error shutting down demo server: %v", err)
		}
	}()

	log.Infof("Starting genie demo API version %s", config.VersionString)
	log.Infof("Log in with %s / %s", cfg.Demo.AdminEmail, cfg.Demo.AdminPassword)
	log.Infof("Listening on: %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
