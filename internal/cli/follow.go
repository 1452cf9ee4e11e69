package cli

import (
	"sync"

	"github.com/hekevintran/kinetophone/internal/engine"
	"github.com/hekevintran/kinetophone/internal/loader"
	"github.com/hekevintran/kinetophone/internal/logger"
	"github.com/hekevintran/kinetophone/internal/models"
	"github.com/hekevintran/kinetophone/internal/watch"
)

// follower applies growth of timeline files to a running engine. Files are
// treated as append-only: new channels are added, and timings past the
// number already applied are added to their channel. Edits to earlier
// timings need a restart.
type follower struct {
	engine *engine.Engine

	mu      sync.Mutex
	applied map[string]int // channel -> timings applied
}

func newFollower(eng *engine.Engine, channels []models.Channel) *follower {
	f := &follower{engine: eng, applied: make(map[string]int, len(channels))}
	for _, ch := range channels {
		f.applied[ch.Name] = len(ch.Timings)
	}
	return f
}

// reload re-reads path and applies whatever it gained
func (f *follower) reload(path string) {
	doc, err := loader.Load(path)
	if err != nil {
		logger.Log.Warn().
			Err(err).
			Str("path", path).
			Msg("Reload failed, keeping current timeline")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range doc.Channels {
		count, known := f.applied[ch.Name]
		if !known {
			if err := f.engine.AddChannel(ch); err != nil {
				continue
			}
			f.applied[ch.Name] = len(ch.Timings)
			logger.Log.Info().
				Str("channel", ch.Name).
				Int("timings", len(ch.Timings)).
				Msg("Channel added from reload")
			continue
		}

		if len(ch.Timings) < count {
			logger.Log.Warn().
				Str("channel", ch.Name).
				Int("applied", count).
				Int("declared", len(ch.Timings)).
				Msg("Timings were removed; restart to apply")
			continue
		}

		added := 0
		for _, decl := range ch.Timings[count:] {
			if err := f.engine.AddTiming(ch.Name, decl); err != nil {
				// Leave the rest for the next reload once the bad entry is fixed
				break
			}
			added++
		}
		f.applied[ch.Name] = count + added
		if added > 0 {
			logger.Log.Info().
				Str("channel", ch.Name).
				Int("added", added).
				Msg("Timings added from reload")
		}
	}
}

// startWatching follows paths until the returned stop function is called
func startWatching(eng *engine.Engine, tl *timeline, paths []string) (func(), error) {
	f := newFollower(eng, tl.channels)
	w, err := watch.New(paths, f.reload)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to watch timeline files", err)
	}
	if err := w.Start(); err != nil {
		return nil, WrapExitError(ExitFailure, "failed to watch timeline files", err)
	}
	return func() {
		_ = w.Stop()
	}, nil
}
