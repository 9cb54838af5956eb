package main

import (
	"fmt"
	"os"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/render"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRenderCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the silhouette as an SVG document",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := resolveOutline(cmd, v)
			if err != nil {
				return err
			}

			opts := render.DefaultOptions
			opts.TextureURL = v.GetString("texture")
			doc := render.SVG(o, opts)

			path := v.GetString("out")
			if path == "" || path == "-" {
				_, err = cmd.OutOrStdout().Write(doc)
				return err
			}
			if err := os.WriteFile(path, doc, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", path, len(doc))
			return nil
		},
	}

	addPhaseFlags(cmd)
	cmd.Flags().String("out", "", "output file (default stdout)")
	cmd.Flags().String("texture", "", "optional texture image URL clipped to the lit region")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return bindFlags(v, cmd, "phase", "day", "out", "texture")
	}
	return cmd
}
