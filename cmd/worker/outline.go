package main

import (
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/render"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/silhouette"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newOutlineCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Print the lit silhouette for a phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := resolveOutline(cmd, v)
			if err != nil {
				return err
			}

			steps := v.GetInt("polygon")
			out := struct {
				silhouette.Outline
				Segments []silhouette.Segment `json:"segments"`
				Area     float64              `json:"area"`
				SVGPath  string               `json:"svg_path"`
				Polygon  []silhouette.Point   `json:"polygon,omitempty"`
			}{
				Outline:  o,
				Segments: o.Segments(),
				Area:     o.Area(),
				SVGPath:  render.SVGPath(o),
			}
			if steps > 0 {
				out.Polygon = o.Polygon(steps)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	addPhaseFlags(cmd)
	cmd.Flags().Int("polygon", 0, "also emit a sampled polygon with this many points per arc")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return bindFlags(v, cmd, "phase", "day", "polygon")
	}
	return cmd
}

func addPhaseFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("phase", -1, "phase in cycles, 0 = new moon, 0.5 = full")
	cmd.Flags().String("day", "", "use the phase of this day, YYYY-MM-DD (default today)")
}

// resolveOutline uses --phase when given, otherwise the phase of --day.
func resolveOutline(cmd *cobra.Command, v *viper.Viper) (silhouette.Outline, error) {
	obs, loc, err := observer(v)
	if err != nil {
		return silhouette.Outline{}, err
	}
	svc := newService(obs)

	if phase := v.GetFloat64("phase"); cmd.Flags().Changed("phase") || phase >= 0 {
		return svc.Outline(phase)
	}

	day := time.Now().In(loc)
	if raw := v.GetString("day"); raw != "" {
		day, err = time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			return silhouette.Outline{}, fmt.Errorf("--day must be YYYY-MM-DD: %w", err)
		}
	}
	report, err := svc.Day(cmd.Context(), day.Year(), day.Month(), day.Day(), loc, obs.Latitude, obs.Longitude)
	if err != nil {
		return silhouette.Outline{}, err
	}
	return svc.Outline(report.Moon.Phase)
}
