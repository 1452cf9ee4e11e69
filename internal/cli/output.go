package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hekevintran/kinetophone/internal/events"
	"github.com/hekevintran/kinetophone/internal/logger"
	"github.com/hekevintran/kinetophone/internal/models"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Runtime failure
	ExitCommandError = 2 // Command error (bad flags, unreadable files, invalid timelines)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// traceEvents are the event names printed by play and render
var traceEvents = []string{
	events.Play,
	events.Pause,
	events.TimeUpdate,
	events.Seeking,
	events.Seek,
	events.Enter,
	events.Exit,
	events.End,
}

// EventPrinter writes one line per engine event.
type EventPrinter struct {
	Format string
	Writer io.Writer
}

// Print writes ev in the configured format.
func (p *EventPrinter) Print(ev events.Event) {
	if p.Format == "json" {
		_ = json.NewEncoder(p.Writer).Encode(ev)
		return
	}
	fmt.Fprintln(p.Writer, FormatEvent(ev))
}

// FormatEvent renders ev as a single human-readable line
func FormatEvent(ev events.Event) string {
	switch {
	case ev.Cue != nil:
		line := fmt.Sprintf("%s %s [%d,%d)", ev.Name, ev.Cue.Name, ev.Cue.Start, cueEnd(*ev.Cue))
		if ev.Cue.Data != nil {
			line += " " + formatData(ev.Cue.Data)
		}
		return line
	case ev.HasTime():
		return fmt.Sprintf("%s %d", ev.Name, ev.Time)
	default:
		return ev.Name
	}
}

// cueEnd returns the exclusive end of a cue from whichever bound it declares
func cueEnd(cue models.Cue) int64 {
	switch {
	case cue.End != nil:
		return *cue.End
	case cue.Duration != nil:
		return cue.Start + *cue.Duration
	default:
		return cue.Start + 1
	}
}

func formatData(data any) string {
	if s, ok := data.(string); ok {
		return fmt.Sprintf("%q", strings.TrimSpace(s))
	}
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(b)
}

// logEvent writes an engine event to the debug log
func logEvent(ev events.Event) {
	logger.Log.Debug().
		Str("event", ev.Name).
		Int64("time", ev.Time).
		Msg(FormatEvent(ev))
}
