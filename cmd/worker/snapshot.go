package main

import (
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newSnapshotCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the moon report for a day or an instant",
		RunE: func(cmd *cobra.Command, args []string) error {
			obs, loc, err := observer(v)
			if err != nil {
				return err
			}
			svc := newService(obs)
			ctx := cmd.Context()

			var report *domain.Report
			switch {
			case v.GetString("at") != "":
				at, perr := time.Parse(time.RFC3339, v.GetString("at"))
				if perr != nil {
					return fmt.Errorf("--at must be RFC3339: %w", perr)
				}
				report, err = svc.Snapshot(ctx, at.In(loc), obs.Latitude, obs.Longitude)
			case v.GetString("date") != "":
				day, perr := time.ParseInLocation("2006-01-02", v.GetString("date"), loc)
				if perr != nil {
					return fmt.Errorf("--date must be YYYY-MM-DD: %w", perr)
				}
				report, err = svc.Day(ctx, day.Year(), day.Month(), day.Day(), loc, obs.Latitude, obs.Longitude)
			default:
				report, err = svc.Today(ctx, loc, obs.Latitude, obs.Longitude)
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().String("date", "", "calendar day, YYYY-MM-DD (default today)")
	cmd.Flags().String("at", "", "exact instant, RFC3339")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return bindFlags(v, cmd, "date", "at")
	}
	return cmd
}
