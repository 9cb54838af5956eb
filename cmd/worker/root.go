package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/domain"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newRootCmd builds the CLI. Flags, MOONLOG_* env vars and an optional
// config file feed one viper instance per command tree.
func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "moonlog-worker",
		Short:         "Offline moon phase tools",
		Long:          "Compute moon reports, silhouettes and SVG renders without running the API server.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default .moonlog.yaml)")
	pf.Float64("lat", 51.4779, "observer latitude")
	pf.Float64("lng", -0.0015, "observer longitude")
	pf.String("tz", "UTC", "observer IANA timezone")
	for _, key := range []string{"config", "lat", "lng", "tz"} {
		_ = v.BindPFlag(key, pf.Lookup(key))
	}

	root.AddCommand(
		newSnapshotCmd(v),
		newOutlineCmd(v),
		newRenderCmd(v),
		newCalendarCmd(v),
	)
	return root
}

func initConfig(v *viper.Viper) error {
	v.SetEnvPrefix("MOONLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
		return nil
	}

	v.SetConfigName(".moonlog")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	// It's fine if no config file is found; flags and env cover everything.
	_ = v.ReadInConfig()
	return nil
}

// observer resolves the shared location flags.
func observer(v *viper.Viper) (domain.Location, *time.Location, error) {
	obs := domain.Location{
		Latitude:  v.GetFloat64("lat"),
		Longitude: v.GetFloat64("lng"),
		Timezone:  v.GetString("tz"),
	}
	if err := service.ValidateLocation(obs.Latitude, obs.Longitude); err != nil {
		return obs, nil, err
	}
	loc, err := time.LoadLocation(obs.Timezone)
	if err != nil {
		return obs, nil, fmt.Errorf("%w: %s", domain.ErrInvalidTimezone, obs.Timezone)
	}
	return obs, loc, nil
}

// bindFlags binds a subcommand's own flags at run time, so commands that
// share a flag name do not steal each other's binding.
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys ...string) error {
	for _, key := range keys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(key)); err != nil {
			return err
		}
	}
	return nil
}

func newService(obs domain.Location) *service.PhaseService {
	return service.NewPhaseService(nil, obs)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
