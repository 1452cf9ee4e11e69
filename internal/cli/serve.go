package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hekevintran/kinetophone/internal/clock"
	"github.com/hekevintran/kinetophone/internal/logger"
	"github.com/hekevintran/kinetophone/internal/server"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Port     int
	Autoplay bool
	Watch    bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve FILE...",
		Short: "Serve the HTTP control API over a real-time engine",
		Long: `Load a timeline and expose playback control and queries over HTTP
under /api. Events are written to the log at debug level.

Examples:
  kinetophone serve show.yaml
  kinetophone serve --port 9000 --autoplay captions.srt
  kinetophone serve --watch live.srt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd, args)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "listen port (default: server.port from config)")
	cmd.Flags().BoolVar(&opts.Autoplay, "autoplay", false, "start playback once the server is up")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "add timings appended to the files while serving")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command, args []string) error {
	cfg := *opts.Config
	if opts.Port > 0 {
		cfg.Server.Port = opts.Port
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	tl, err := loadTimeline(args, opts.Duration)
	if err != nil {
		return err
	}

	eng, err := newEngine(clock.NewRealtime(cfg.Engine.FrameInterval), &cfg, tl)
	if err != nil {
		return err
	}
	for _, name := range traceEvents {
		eng.On(name, logEvent)
	}

	if opts.Watch {
		stopWatching, err := startWatching(eng, tl, args)
		if err != nil {
			return err
		}
		defer stopWatching()
	}

	srv := server.New(&cfg, eng)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	if opts.Autoplay {
		eng.Play()
	}

	logger.Log.Info().
		Int("channels", len(tl.channels)).
		Int64("duration", tl.duration).
		Bool("autoplay", opts.Autoplay).
		Bool("watch", opts.Watch).
		Msg("Serving timeline")

	select {
	case err := <-errCh:
		if err != nil {
			return WrapExitError(ExitFailure, "server failed", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return WrapExitError(ExitFailure, "shutdown failed", err)
	}
	return nil
}
