package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCalendarCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print one line per day of a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			obs, loc, err := observer(v)
			if err != nil {
				return err
			}

			now := time.Now().In(loc)
			year, month := v.GetInt("year"), v.GetInt("month")
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}

			days, err := newService(obs).Calendar(cmd.Context(), year, time.Month(month), loc, obs.Latitude, obs.Longitude)
			if err != nil {
				return err
			}

			if v.GetBool("json") {
				return writeJSON(cmd.OutOrStdout(), days)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", "date", "phase", "age", "lit")
			for _, d := range days {
				fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.0f%%\n", d.Date, d.PhaseText, d.Moon.Age, d.Moon.IlluminatedFraction*100)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().Int("year", 0, "year (default current)")
	cmd.Flags().Int("month", 0, "month 1-12 (default current)")
	cmd.Flags().Bool("json", false, "emit JSON instead of a table")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return bindFlags(v, cmd, "year", "month", "json")
	}
	return cmd
}
