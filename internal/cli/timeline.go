package cli

import (
	"github.com/hekevintran/kinetophone/internal/clock"
	"github.com/hekevintran/kinetophone/internal/config"
	"github.com/hekevintran/kinetophone/internal/engine"
	"github.com/hekevintran/kinetophone/internal/loader"
	"github.com/hekevintran/kinetophone/internal/logger"
	"github.com/hekevintran/kinetophone/internal/models"
)

// timeline is the merged content of the files named on the command line
type timeline struct {
	channels []models.Channel
	duration int64
}

// loadTimeline reads every file and merges their channels in argument order.
// The duration is the override when positive, otherwise the longest declared
// duration, otherwise the latest timing end.
func loadTimeline(paths []string, override int64) (*timeline, error) {
	tl := &timeline{}
	for _, path := range paths {
		doc, err := loader.Load(path)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load timeline", err)
		}
		tl.channels = append(tl.channels, doc.Channels...)
		if doc.Duration > tl.duration {
			tl.duration = doc.Duration
		}

		logger.Log.Debug().
			Str("path", path).
			Int("channels", len(doc.Channels)).
			Msg("Timeline file loaded")
	}

	switch {
	case override > 0:
		tl.duration = override
	case tl.duration == 0:
		tl.duration = loader.TotalDuration(tl.channels)
	}

	if tl.duration <= 0 {
		return nil, NewExitError(ExitCommandError, "timeline has no duration: pass --duration or declare timings")
	}
	return tl, nil
}

// newEngine builds an engine over clk configured from cfg
func newEngine(clk clock.Clock, cfg *config.Config, tl *timeline) (*engine.Engine, error) {
	eng, err := engine.New(clk, tl.duration, tl.channels,
		engine.WithTimeUpdateResolution(cfg.Engine.TickResolution),
		engine.WithTickImmediately(cfg.Engine.TickImmediately),
	)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid timeline", err)
	}
	if err := eng.SetPlaybackRate(cfg.Engine.PlaybackRate); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid playback rate", err)
	}
	return eng, nil
}

// subscribe prints every trace event emitted by eng
func subscribe(eng *engine.Engine, printer *EventPrinter) {
	for _, name := range traceEvents {
		eng.On(name, printer.Print)
	}
}
