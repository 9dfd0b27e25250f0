package main

import (
	"context"
	"encoding/json"
	"errors"
	"os/signal"
	"sync"
	"syscall"

	"argynix-connect/internal/service"
	"argynix-connect/internal/store"

	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Poll jobs and unread notifications and print each snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			tb, err := a.platform(ctx)
			if err != nil {
				return err
			}
			kv := store.NewMemoryKV()
			enc := json.NewEncoder(cmd.OutOrStdout())
			var mu sync.Mutex

			// print runs after the refresh so each line is the fresh snapshot.
			printer := func(refresh *service.Poller, latest func(context.Context, store.KV) (any, error)) *service.Poller {
				return service.NewPoller(refresh.Name(), refresh.Interval(), func(ctx context.Context) error {
					if err := refresh.Refresh(ctx); err != nil {
						return err
					}
					snap, err := latest(ctx, kv)
					if errors.Is(err, store.ErrMiss) {
						return nil
					}
					if err != nil {
						return err
					}
					mu.Lock()
					defer mu.Unlock()
					return enc.Encode(map[string]any{refresh.Name(): snap})
				}, a.logger)
			}

			pollers := []*service.Poller{
				printer(service.NewJobsPoller(tb, kv, a.cfg.Polling.JobsInterval, a.logger),
					func(ctx context.Context, kv store.KV) (any, error) { return service.LatestJobs(ctx, kv) }),
				printer(service.NewNotificationsPoller(tb, kv, a.cfg.Polling.NotificationsInterval, a.logger),
					func(ctx context.Context, kv store.KV) (any, error) { return service.LatestNotifications(ctx, kv) }),
			}

			var wg sync.WaitGroup
			for _, p := range pollers {
				wg.Add(1)
				go func(p *service.Poller) {
					defer wg.Done()
					p.Run(ctx)
				}(p)
			}
			wg.Wait()
			return nil
		},
	}
}
