package cli

import (
	"fmt"

	"github.com/hekevintran/kinetophone/internal/clock"
	"github.com/hekevintran/kinetophone/internal/logger"
	"github.com/spf13/cobra"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Step int64
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render FILE...",
		Short: "Print the event trace of a full playback without waiting",
		Long: `Play the timeline once on a virtual clock and print every event.

The clock advances by --step milliseconds of wall time per frame, scaled
by the configured playback rate, until the timeline ends. The output is
deterministic for a given timeline, step and configuration.

Examples:
  kinetophone render show.yaml
  kinetophone render --step 40 captions.srt markers.yaml
  kinetophone render --format json show.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, cmd, args)
		},
	}

	cmd.Flags().Int64Var(&opts.Step, "step", 0, "wall milliseconds per frame (default: engine frame interval)")

	return cmd
}

func runRender(opts *RenderOptions, cmd *cobra.Command, args []string) error {
	cfg := opts.Config

	step := opts.Step
	if step <= 0 {
		step = cfg.Engine.FrameInterval.Milliseconds()
	}
	if int64(float64(step)*cfg.Engine.PlaybackRate) < 1 {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("step %dms at rate %v does not advance the clock", step, cfg.Engine.PlaybackRate))
	}

	tl, err := loadTimeline(args, opts.Duration)
	if err != nil {
		return err
	}

	clk := clock.NewManual()
	eng, err := newEngine(clk, cfg, tl)
	if err != nil {
		return err
	}
	subscribe(eng, &EventPrinter{Format: opts.Format, Writer: cmd.OutOrStdout()})

	logger.Log.Debug().
		Int64("step", step).
		Int64("duration", tl.duration).
		Msg("Rendering timeline")

	// The engine pauses the clock when the timeline ends
	eng.Play()
	frames := 0
	for clk.Advance(step) {
		frames++
	}

	logger.Log.Debug().
		Int("frames", frames).
		Msg("Render complete")
	return nil
}
