package main

import (
	"context"
	"errors"
	"fmt"

	"argynix-connect/internal/config"
	"argynix-connect/internal/logger"
	"argynix-connect/internal/service"
	"argynix-connect/internal/store"
	"argynix-connect/internal/thingsboard"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const serviceName = "argynix-connect"

// app carries what every command needs once flags are applied.
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	sessionID string
	username  string
	password  string
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Load()}

	root := &cobra.Command{
		Use:           serviceName,
		Short:         "ThingsBoard console backend and command line tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			l, err := logger.NewLogger(a.cfg.Log.Level, a.cfg.Log.Format, serviceName)
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			a.logger = l
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.ThingsBoard.URL, "url", a.cfg.ThingsBoard.URL, "ThingsBoard instance URL")
	flags.StringVar(&a.cfg.ThingsBoard.Token, "token", a.cfg.ThingsBoard.Token, "ThingsBoard JWT")
	flags.StringVar(&a.sessionID, "session", "", "reuse a session opened through the console API")
	flags.StringVar(&a.username, "username", "", "log in with this user instead of --token")
	flags.StringVar(&a.password, "password", "", "password for --username")
	flags.StringVar(&a.cfg.Log.Level, "log-level", a.cfg.Log.Level, "debug, info, warn or error")
	flags.StringVar(&a.cfg.Log.Format, "log-format", a.cfg.Log.Format, "json or console")

	root.AddCommand(
		newServeCmd(a),
		newExportCmd(a),
		newScheduleCmd(a),
		newWatchCmd(a),
	)
	return root
}

// platform returns a client for a stored session, or for the configured
// instance after logging in when credentials were passed.
func (a *app) platform(ctx context.Context) (*thingsboard.Client, error) {
	clients := service.NewClientFactory(a.cfg.ThingsBoard, a.logger)
	if a.sessionID != "" {
		sess, err := store.NewSessionStore(a.openKV(ctx), a.cfg.Session.TTL).Get(ctx, a.sessionID)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", a.sessionID, err)
		}
		return clients.ForSession(sess), nil
	}
	token := a.cfg.ThingsBoard.Token
	if a.username != "" {
		resp, err := clients(a.cfg.ThingsBoard.URL, "").Login(ctx, a.username, a.password)
		if err != nil {
			return nil, fmt.Errorf("login failed: %w", err)
		}
		if resp == nil || resp.Token == "" {
			return nil, errors.New("login returned no token")
		}
		token = resp.Token
	}
	if token == "" {
		return nil, errors.New("no credentials: pass --session, --token or --username/--password")
	}
	return clients(a.cfg.ThingsBoard.URL, token), nil
}
