package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hekevintran/kinetophone/internal/events"
	"github.com/hekevintran/kinetophone/internal/logger"
	"github.com/hekevintran/kinetophone/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const showYAML = `duration: 100
channels:
  - name: captions
    timings:
      - start: 10
        end: 50
        data: hello
      - start: 60
        duration: 30
        data: world
  - name: markers
    timings:
      - start: 45
        data: beat
`

func writeTimeline(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command with args and returns stdout and stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() {
		logger.Log = zerolog.Nop()
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	})

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "kinetophone", cmd.Use)
	assert.Contains(t, cmd.Long, "WebVTT")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"play", "render", "query", "serve"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("duration"))
}

func TestInvalidFormat(t *testing.T) {
	path := writeTimeline(t, "show.yaml", showYAML)
	_, _, err := execute(t, "render", "--format", "xml", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestMissingConfigFile(t *testing.T) {
	path := writeTimeline(t, "show.yaml", showYAML)
	_, _, err := execute(t, "render", "--config", filepath.Join(t.TempDir(), "nope.yaml"), path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestVerboseLogsToStderr(t *testing.T) {
	path := writeTimeline(t, "show.yaml", showYAML)
	stdout, stderr, err := execute(t, "render", "-v", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "enter captions [10,50)")
	assert.Contains(t, stderr, "Rendering timeline")
	assert.NotContains(t, stdout, "Rendering timeline")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))

	wrapped := WrapExitError(ExitCommandError, "load", assert.AnError)
	assert.ErrorIs(t, wrapped, assert.AnError)
	assert.Equal(t, "load: "+assert.AnError.Error(), wrapped.Error())
}

func TestFormatEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   events.Event
		want string
	}{
		{"plain", events.Event{Name: events.Play}, "play"},
		{"timeupdate", events.Event{Name: events.TimeUpdate, Time: 40}, "timeupdate 40"},
		{"seek at zero", events.Event{Name: events.Seek}, "seek 0"},
		{"cue with end", events.Event{Name: events.Enter, Cue: &models.Cue{Name: "captions", Start: 10, End: models.Int64(50), Data: "hi"}}, `enter captions [10,50) "hi"`},
		{"cue with duration", events.Event{Name: events.Exit, Cue: &models.Cue{Name: "captions", Start: 10, Duration: models.Int64(5)}}, "exit captions [10,15)"},
		{"point cue with map data", events.Event{Name: events.Enter, Cue: &models.Cue{Name: "m", Start: 3, Data: map[string]any{"k": 1}}}, `enter m [3,4) {"k":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatEvent(tt.ev))
		})
	}
}
