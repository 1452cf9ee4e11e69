package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/hekevintran/kinetophone/internal/clock"
	"github.com/hekevintran/kinetophone/internal/events"
	"github.com/hekevintran/kinetophone/internal/logger"
	"github.com/spf13/cobra"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	From  int64
	Watch bool
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play FILE...",
		Short: "Play a timeline in real time, printing events as they happen",
		Long: `Play the timeline against the wall clock and print one line per event
until the timeline ends or the process is interrupted.

Examples:
  kinetophone play show.yaml
  kinetophone play --from 30000 captions.srt
  kinetophone play --watch --duration 3600000 live.srt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, cmd, args)
		},
	}

	cmd.Flags().Int64Var(&opts.From, "from", 0, "start position in milliseconds")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "add timings appended to the files during playback")

	return cmd
}

func runPlay(opts *PlayOptions, cmd *cobra.Command, args []string) error {
	cfg := opts.Config

	tl, err := loadTimeline(args, opts.Duration)
	if err != nil {
		return err
	}

	clk := clock.NewRealtime(cfg.Engine.FrameInterval)
	eng, err := newEngine(clk, cfg, tl)
	if err != nil {
		return err
	}
	subscribe(eng, &EventPrinter{Format: opts.Format, Writer: cmd.OutOrStdout()})

	if opts.Watch {
		stopWatching, err := startWatching(eng, tl, args)
		if err != nil {
			return err
		}
		defer stopWatching()
	}

	done := make(chan struct{})
	eng.Once(events.End, func(events.Event) {
		close(done)
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.From > 0 {
		eng.Seek(opts.From)
	}
	eng.Play()

	select {
	case <-done:
		logger.Log.Debug().Msg("Playback finished")
	case <-ctx.Done():
		logger.Log.Info().
			Int64("current_time", eng.CurrentTime()).
			Msg("Playback interrupted")
		eng.Pause()
	}
	return nil
}
