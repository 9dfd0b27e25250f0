package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"argynix-connect/internal/database"
	httpapi "argynix-connect/internal/http"
	"argynix-connect/internal/mqtt"
	"argynix-connect/internal/repository"
	"argynix-connect/internal/service"
	"argynix-connect/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the console HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&a.cfg.HTTP.Addr, "addr", a.cfg.HTTP.Addr, "listen address")
	cmd.Flags().BoolVar(&a.cfg.MQTT.Enabled, "mqtt", a.cfg.MQTT.Enabled, "subscribe to MQTT export triggers")
	cmd.Flags().StringVar(&a.cfg.Export.Dir, "export-dir", a.cfg.Export.Dir, "directory for MQTT triggered exports")
	return cmd
}

func (a *app) serve(parent context.Context) error {
	cfg, logger := a.cfg, a.logger
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	kv := a.openKV(ctx)

	var history repository.ExportHistoryRepository = repository.NewMemoryExportHistoryRepository()
	var db *sql.DB
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(ctx, &cfg.Database); err == nil {
			repo := repository.NewPostgresExportHistoryRepository(d)
			if err := repo.EnsureSchema(ctx); err != nil {
				logger.Warn("Export history schema failed, using memory history", zap.Error(err))
				_ = database.Close(d)
			} else {
				db = d
				history = repo
				logger.Info("DB enabled for export history")
			}
		} else {
			logger.Warn("DB enabled but connection failed, using memory history", zap.Error(err))
		}
	}
	defer func() {
		if db != nil {
			_ = database.Close(db)
		}
	}()

	clients := service.NewClientFactory(cfg.ThingsBoard, logger)
	sessions := store.NewSessionStore(kv, cfg.Session.TTL)
	exports := service.NewExportService(history, cfg.ThingsBoard.TimeseriesLimit, logger)

	router := httpapi.NewRouter(httpapi.Services{
		Sessions:    service.NewSessionService(sessions, clients, cfg.ThingsBoard.URL, logger),
		Clients:     clients,
		Exports:     exports,
		Schedules:   service.NewScheduleService(logger),
		RPC:         service.NewRPCService(logger),
		Permissions: service.NewPermissionService(logger),
		Stats:       service.NewStatsService(logger),
		Snapshots:   kv,
	}, logger)

	var wg sync.WaitGroup
	if cfg.ThingsBoard.Token != "" {
		tb := clients(cfg.ThingsBoard.URL, cfg.ThingsBoard.Token)
		for _, p := range []*service.Poller{
			service.NewJobsPoller(tb, kv, cfg.Polling.JobsInterval, logger),
			service.NewNotificationsPoller(tb, kv, cfg.Polling.NotificationsInterval, logger),
		} {
			wg.Add(1)
			go func(p *service.Poller) {
				defer wg.Done()
				p.Run(ctx)
			}(p)
		}
	} else {
		logger.Info("THINGSBOARD_TOKEN not set, background polling disabled")
	}

	if cfg.MQTT.Enabled {
		client, err := mqtt.NewClient(&cfg.MQTT, logger)
		if err != nil {
			logger.Warn("MQTT enabled but connection failed, export triggers disabled", zap.Error(err))
		} else {
			defer client.Disconnect()
			exporter := service.NewSessionExporter(sessions, clients, exports, cfg.Export.Dir, logger)
			broker := mqtt.NewExportBroker(exporter, logger)
			if cfg.MQTT.ResultTopic != "" {
				broker.PublishResults(client, cfg.MQTT.ResultTopic, cfg.MQTT.QoS)
			}
			if err := broker.Start(client, cfg.MQTT.Topic, cfg.MQTT.QoS); err != nil {
				logger.Warn("MQTT export broker failed to start", zap.Error(err))
			}
		}
	}

	srv := service.NewServer(cfg.HTTP.Addr, router.Handler(), logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case <-ctx.Done():
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	wg.Wait()
	return runErr
}

// openKV prefers Redis and falls back to process memory when it is down.
func (a *app) openKV(ctx context.Context) store.KV {
	client := store.NewRedisClient(&a.cfg.Redis)
	if err := store.Ping(ctx, client); err != nil {
		a.logger.Warn("Redis unavailable, keeping sessions in memory",
			zap.String("addr", a.cfg.Redis.Addr),
			zap.Error(err),
		)
		_ = client.Close()
		return store.NewMemoryKV()
	}
	return store.NewRedisKV(client)
}
