package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aliskhannn/api-learning-hub/internal/particles"
)

func particlesCmd(_ *globalFlags) *cobra.Command {
	var (
		width  int
		height int
		frames int
		theme  string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "particles",
		Short: "Render one frame of the particle background as SVG",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if width < 1 || height < 1 {
				return fmt.Errorf("invalid size %dx%d", width, height)
			}

			background := particles.DarkBackground
			switch theme {
			case "dark":
			case "light":
				background = particles.LightBackground
			default:
				return fmt.Errorf("unknown theme %q", theme)
			}

			sim := particles.New(particles.Config{Tiers: particles.DefaultTiers()}, width, height, nil)
			for i := 0; i < frames; i++ {
				sim.Step()
			}

			svg := particles.NewSVGSurface(background)
			sim.Render(svg)

			if out == "" || out == "-" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), svg.String())
				return err
			}
			if err := os.WriteFile(out, []byte(svg.String()), 0o644); err != nil {
				return fmt.Errorf("write svg: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d particles, %d connections written to %s\n",
				sim.Len(), len(sim.Connections()), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 1280, "Viewport width")
	cmd.Flags().IntVar(&height, "height", 720, "Viewport height")
	cmd.Flags().IntVar(&frames, "frames", 0, "Frames to simulate before rendering")
	cmd.Flags().StringVar(&theme, "theme", "dark", "Background theme: dark or light")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	return cmd
}
