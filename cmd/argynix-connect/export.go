package main

import (
	"errors"
	"fmt"
	"time"

	"argynix-connect/internal/export"
	"argynix-connect/internal/repository"
	"argynix-connect/internal/service"

	"github.com/spf13/cobra"
)

type exportOptions struct {
	deviceID   string
	deviceName string
	keys       []string
	start      string
	end        string
	format     string
	out        string
}

func newExportCmd(a *app) *cobra.Command {
	var o exportOptions
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export device telemetry to csv, json, pdf, pdf-graph or xlsx",
		Example: "  argynix-connect export --device-id 7f3e... --device-name Boiler --keys temp,humidity \\\n" +
			"    --start 2026-01-01T00:00:00Z --end 2026-01-02T00:00:00Z --format xlsx --out ./exports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tb, err := a.platform(ctx)
			if err != nil {
				return err
			}
			req, err := o.request(time.Now())
			if err != nil {
				return err
			}

			exports := service.NewExportService(repository.NewMemoryExportHistoryRepository(), a.cfg.ThingsBoard.TimeseriesLimit, a.logger)
			file, err := exports.Export(ctx, tb, req)
			if errors.Is(err, export.ErrNoData) {
				fmt.Fprintln(cmd.ErrOrStderr(), "No Data")
				return nil
			}
			if err != nil {
				return err
			}
			path, err := service.WriteFile(o.out, file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d rows)\n", path, file.Rows)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.deviceID, "device-id", "", "device id")
	f.StringVar(&o.deviceName, "device-name", "", "device name used in the file name")
	f.StringSliceVar(&o.keys, "keys", nil, "telemetry keys, comma separated")
	f.StringVar(&o.start, "start", "", "range start, RFC3339 or epoch ms (default 24h ago)")
	f.StringVar(&o.end, "end", "", "range end, RFC3339 or epoch ms (default now)")
	f.StringVar(&o.format, "format", string(export.FormatCSV), "csv, json, pdf, pdf-graph or xlsx")
	f.StringVar(&o.out, "out", a.cfg.Export.Dir, "output directory")
	_ = cmd.MarkFlagRequired("device-id")
	_ = cmd.MarkFlagRequired("keys")
	return cmd
}

func (o exportOptions) request(now time.Time) (service.ExportRequest, error) {
	startTs, endTs := service.DefaultRange(now)
	var err error
	if o.start != "" {
		if startTs, err = parseTime(o.start); err != nil {
			return service.ExportRequest{}, fmt.Errorf("--start: %w", err)
		}
	}
	if o.end != "" {
		if endTs, err = parseTime(o.end); err != nil {
			return service.ExportRequest{}, fmt.Errorf("--end: %w", err)
		}
	}
	name := o.deviceName
	if name == "" {
		name = o.deviceID
	}
	return service.ExportRequest{
		DeviceID:   o.deviceID,
		DeviceName: name,
		Keys:       o.keys,
		StartTs:    startTs,
		EndTs:      endTs,
		Format:     o.format,
	}, nil
}
