package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"argynix-connect/internal/schedule"
	"argynix-connect/internal/service"

	"github.com/spf13/cobra"
)

func newScheduleCmd(a *app) *cobra.Command {
	var deviceID string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage offline schedules of a device",
	}
	cmd.PersistentFlags().StringVar(&deviceID, "device-id", "", "device id")
	_ = cmd.MarkPersistentFlagRequired("device-id")

	svc := func() *service.ScheduleService { return service.NewScheduleService(a.logger) }

	list := &cobra.Command{
		Use:   "list",
		Short: "List schedules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tb, err := a.platform(cmd.Context())
			if err != nil {
				return err
			}
			items, err := svc().List(cmd.Context(), tb, deviceID)
			if err != nil {
				return err
			}
			return printSchedules(cmd.OutOrStdout(), items)
		},
	}

	var (
		attrKey   string
		attrValue string
		fireTime  string
		days      []int
		at        string
		disabled  bool
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a schedule; --fire-time for a one-off, --days and --time for a weekly one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc := &schedule.Schedule{
				Enabled:        !disabled,
				AttributeKey:   attrKey,
				AttributeValue: rawValue(attrValue),
				Mode:           schedule.ModeRecurring,
				Days:           days,
				Time:           at,
			}
			if fireTime != "" {
				ms, err := parseTime(fireTime)
				if err != nil {
					return fmt.Errorf("--fire-time: %w", err)
				}
				sc.Mode, sc.FireTime, sc.Days, sc.Time = schedule.ModeParticular, ms, nil, ""
			}
			tb, err := a.platform(cmd.Context())
			if err != nil {
				return err
			}
			created, err := svc().Create(cmd.Context(), tb, deviceID, sc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), created.Key)
			return nil
		},
	}
	add.Flags().StringVar(&attrKey, "attribute", "", "attribute key to write")
	add.Flags().StringVar(&attrValue, "value", "", "value to write; JSON or a plain string")
	add.Flags().StringVar(&fireTime, "fire-time", "", "one-off time, RFC3339 or epoch ms")
	add.Flags().IntSliceVar(&days, "days", nil, "weekdays, 0 is Sunday")
	add.Flags().StringVar(&at, "time", "", "time of day, HH:MM")
	add.Flags().BoolVar(&disabled, "disabled", false, "store the schedule disabled")
	_ = add.MarkFlagRequired("attribute")

	toggle := func(use string, enabled bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " KEY",
			Short: strings.ToUpper(use[:1]) + use[1:] + " a schedule",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tb, err := a.platform(cmd.Context())
				if err != nil {
					return err
				}
				_, err = svc().SetEnabled(cmd.Context(), tb, deviceID, args[0], enabled)
				return err
			},
		}
	}

	remove := &cobra.Command{
		Use:   "delete KEY",
		Short: "Delete a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tb, err := a.platform(cmd.Context())
			if err != nil {
				return err
			}
			return svc().Delete(cmd.Context(), tb, deviceID, args[0])
		},
	}

	cmd.AddCommand(list, add, toggle("enable", true), toggle("disable", false), remove)
	return cmd
}

// rawValue keeps valid JSON as is and quotes anything else.
func rawValue(s string) json.RawMessage {
	if json.Valid([]byte(s)) {
		return json.RawMessage(s)
	}
	b, _ := json.Marshal(s)
	return b
}

func printSchedules(w io.Writer, items []*schedule.Schedule) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tENABLED\tATTRIBUTE\tVALUE\tWHEN")
	for _, sc := range items {
		when := fmt.Sprintf("%v %s", sc.Days, sc.Time)
		if sc.Mode == schedule.ModeParticular {
			when = fmt.Sprintf("at %d", sc.FireTime)
		}
		fmt.Fprintf(tw, "%s\t%t\t%s\t%s\t%s\n", sc.Key, sc.Enabled, sc.AttributeKey, sc.AttributeValue, when)
	}
	return tw.Flush()
}
