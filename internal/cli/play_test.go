package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayRunsToEnd(t *testing.T) {
	path := writeTimeline(t, "short.yaml", "duration: 40\nchannels:\n  - name: captions\n    timings:\n      - start: 5\n        end: 20\n")
	t.Setenv("KINETOPHONE_ENGINE_FRAMEINTERVAL", "2ms")
	t.Setenv("KINETOPHONE_ENGINE_TICKRESOLUTION", "1")

	stdout, _, err := execute(t, "play", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "play", lines[0])
	assert.Equal(t, "end", lines[len(lines)-1])
	assert.Contains(t, stdout, "enter captions [5,20)")
	assert.Contains(t, stdout, "exit captions [5,20)")
}

func TestPlayFromEndRewinds(t *testing.T) {
	path := writeTimeline(t, "short.yaml", "duration: 20\nchannels:\n  - name: captions\n    timings:\n      - start: 0\n        end: 10\n")
	t.Setenv("KINETOPHONE_ENGINE_FRAMEINTERVAL", "2ms")

	stdout, _, err := execute(t, "play", "--from", "500", path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "seeking 20\ntimeupdate 20\nseek 20\nplay\n"))
	assert.Contains(t, stdout, "end\n")
}
