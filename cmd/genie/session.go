package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/genielabs/genie-admin/config"
	"github.com/genielabs/genie-admin/pkg/adminapi"
	"github.com/genielabs/genie-admin/pkg/adminstore"
	"github.com/genielabs/genie-admin/pkg/tokenstore"
)

var nowFunc = time.Now

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("error configuring genie: %w", err)
	}
	config.SetLogLevel(cfg)
	return cfg, nil
}

// session is the per-command wiring: config, storage and a store restored from it.
type session struct {
	cfg      *config.Config
	storage  tokenstore.Storage
	store    *adminstore.Store
	registry *prometheus.Registry
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	storage, err := tokenstore.New(cfg)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	client := adminapi.NewClientFromConfig(cfg, storage, registry)

	store, err := adminstore.FromPersistedSnapshot(
		ctx,
		client,
		storage,
		adminstore.WithPageSize(cfg.Admin.PageSize),
		adminstore.WithSuggestionLimit(cfg.Admin.SuggestionLimit),
	)
	if err != nil {
		return nil, err
	}
	store.Subscribe(func(s adminstore.Snapshot) {
		log.WithField("loading", s.IsLoading()).WithField("error", s.Error).Debug("admin store updated")
	})

	return &session{cfg: cfg, storage: storage, store: store, registry: registry}, nil
}

func (s *session) Close() {
	s.store.Dispose()
	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, s.registry); err != nil {
			log.Errorf("failed to write metrics: %v", err)
		}
	}
	if closer, ok := s.storage.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Errorf("failed to close storage: %v", err)
		}
	}
}

// withSession runs fn against a restored store. Commands that need a login fail early
// with a hint instead of a 401 from the API.
func withSession(requireLogin bool, fn func(ctx context.Context, s *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		if requireLogin && !s.store.Snapshot().IsAuthenticated {
			return fmt.Errorf("%w: run `genie login` first", adminstore.ErrNotAuthenticated)
		}
		return fn(ctx, s)
	}
}

// stateError turns the error a read action recorded into a command error.
func stateError(snap adminstore.Snapshot) error {
	if snap.Error != "" {
		return errors.New(snap.Error)
	}
	return nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as an admin and remember the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			password = os.Getenv("GENIE_ADMIN_PASSWORD")
		}

		return withSession(false, func(ctx context.Context, s *session) error {
			if err := s.store.Login(ctx, email, password); err != nil {
				return err
			}
			snap := s.store.Snapshot()
			fmt.Printf("Logged in as %s <%s> (%s)\n", snap.Admin.Name, snap.Admin.Email, snap.Admin.Role)
			return nil
		})(cmd, args)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: withSession(false, func(ctx context.Context, s *session) error {
		if err := s.store.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in admin",
	RunE: withSession(true, func(_ context.Context, s *session) error {
		snap := s.store.Snapshot()
		fmt.Printf("%s <%s>\nrole: %s\nid:   %s\n", snap.Admin.Name, snap.Admin.Email, snap.Admin.Role, snap.Admin.AdminID)
		if exp, ok := adminapi.TokenExpiry(snap.AccessToken); ok {
			verb := "expires"
			if exp.Before(nowFunc()) {
				verb = "expired"
			}
			fmt.Printf("session %s %s\n", verb, humanize.Time(exp))
		}
		return nil
	}),
}

func init() {
	loginCmd.Flags().String("email", "", "admin email")
	loginCmd.Flags().String("password", "", "admin password (default $GENIE_ADMIN_PASSWORD)")
}
