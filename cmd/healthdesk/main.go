package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/healthdesk/healthdesk/internal/config"
	"github.com/healthdesk/healthdesk/internal/platform/notify"
	"github.com/healthdesk/healthdesk/internal/platform/rest"
	"github.com/healthdesk/healthdesk/internal/session"
	"github.com/healthdesk/healthdesk/internal/view"
)

// app is the wired-up client shared by every command.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	api      *rest.Client
	sessions *session.Manager
	notify   *notify.Center
}

func newApp() (*app, error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err == nil {
		logger = logger.Level(level)
	}

	api := rest.New(cfg.APIBaseURL,
		rest.WithLogger(logger),
		rest.WithTimeout(cfg.HTTPTimeout()),
	)
	store := session.NewFileStore(cfg.TokenFile)

	return &app{
		cfg:      cfg,
		logger:   logger,
		api:      api,
		sessions: session.NewManager(api, store, logger),
		notify:   notify.NewCenter(os.Stderr),
	}, nil
}

// requireSession restores the stored session and fails the command when no
// one is signed in.
func (a *app) requireSession(ctx context.Context) (*session.User, error) {
	if err := a.sessions.Restore(ctx); err != nil {
		return nil, fmt.Errorf("could not reach the server: %w", err)
	}
	user := a.sessions.CurrentUser()
	if user == nil {
		return nil, fmt.Errorf("not signed in; run: healthdesk login")
	}
	return user, nil
}

// requireArea additionally checks that the signed-in role may enter the area.
func (a *app) requireArea(ctx context.Context, area view.Area) (*session.User, error) {
	user, err := a.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if !view.CanEnter(user.Role, area) {
		return nil, fmt.Errorf("your role (%s) cannot access %s", user.Role, area)
	}
	return user, nil
}

// requireAdmin gates the management-only operations.
func (a *app) requireAdmin(ctx context.Context) (*session.User, error) {
	user, err := a.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if !user.Role.IsAdmin() {
		return nil, fmt.Errorf("admin access required")
	}
	return user, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "healthdesk",
		Short:         "Terminal client for the HealthDesk care platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(doctorsCmd())
	rootCmd.AddCommand(appointmentsCmd())
	rootCmd.AddCommand(bloodCmd())
	rootCmd.AddCommand(pharmaciesCmd())
	rootCmd.AddCommand(medicinesCmd())
	rootCmd.AddCommand(ordersCmd())
	rootCmd.AddCommand(shopCmd())
	rootCmd.AddCommand(chatCmd())
	rootCmd.AddCommand(adminsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
