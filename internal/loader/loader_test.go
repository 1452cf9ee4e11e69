package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hekevintran/kinetophone/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "show.yaml", `duration: 5000
channels:
  - name: captions
    timings:
      - start: 0
        end: 1000
        data: hello
      - start: 1000
        duration: 500
        data:
          speaker: ada
  - name: markers
    timings:
      - start: 2500
`)

	doc, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(5000), doc.Duration)
	require.Len(t, doc.Channels, 2)

	captions := doc.Channels[0]
	assert.Equal(t, "captions", captions.Name)
	require.Len(t, captions.Timings, 2)
	assert.Equal(t, models.Int64(1000), captions.Timings[0].End)
	assert.Equal(t, "hello", captions.Timings[0].Data)
	assert.Equal(t, models.Int64(500), captions.Timings[1].Duration)
	assert.Nil(t, captions.Timings[1].End)
	assert.Equal(t, map[string]any{"speaker": "ada"}, captions.Timings[1].Data)

	markers := doc.Channels[1]
	assert.Equal(t, int64(2500), markers.Timings[0].Start)
	assert.Nil(t, markers.Timings[0].End)
	assert.Nil(t, markers.Timings[0].Duration)
}

func TestLoad_YAMLUnknownField(t *testing.T) {
	path := writeFile(t, "bad.yml", "channels:\n  - name: a\n    timngs: []\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "show.json", `{"channels":[{"name":"captions","timings":[{"start":100,"end":200,"data":"x"}]}]}`)

	doc, err := Load(path)
	require.NoError(t, err)

	assert.Zero(t, doc.Duration)
	require.Len(t, doc.Channels, 1)
	assert.Equal(t, "captions", doc.Channels[0].Name)
	assert.Equal(t, int64(100), doc.Channels[0].Timings[0].Start)
	assert.Equal(t, int64(200), doc.TotalDuration())
}

func TestLoad_SRT(t *testing.T) {
	path := writeFile(t, "english.srt", "1\n00:00:01,000 --> 00:00:02,500\nHello\n\n2\n00:00:03,000 --> 00:00:04,000\nBye\n")

	doc, err := Load(path)
	require.NoError(t, err)
	require.Len(t, doc.Channels, 1)

	ch := doc.Channels[0]
	assert.Equal(t, "english", ch.Name)
	assert.Equal(t, []models.Timing{
		{Start: 1000, End: models.Int64(2500), Data: "Hello"},
		{Start: 3000, End: models.Int64(4000), Data: "Bye"},
	}, ch.Timings)
	assert.Equal(t, int64(4000), doc.TotalDuration())
}

func TestLoad_VTT(t *testing.T) {
	path := writeFile(t, "notes.vtt", "WEBVTT\n\n00:00.250 --> 00:00.750\nfirst\n")

	doc, err := Load(path)
	require.NoError(t, err)
	require.Len(t, doc.Channels, 1)
	assert.Equal(t, "notes", doc.Channels[0].Name)
	assert.Equal(t, int64(250), doc.Channels[0].Timings[0].Start)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "show.toml", "")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDecode_EmptyYAML(t *testing.T) {
	doc, err := Decode(strings.NewReader(""), FormatYAML, "")
	require.NoError(t, err)
	assert.Empty(t, doc.Channels)
}

func TestTotalDuration(t *testing.T) {
	channels := []models.Channel{
		{Name: "a", Timings: []models.Timing{
			{Start: 10, End: models.Int64(40)},
			{Start: 90},
		}},
		{Name: "b", Timings: []models.Timing{
			{Start: 20, Duration: models.Int64(30)},
			{Start: 500, End: models.Int64(100)},
		}},
	}

	// the reversed timing in b is skipped; the point at 90 ends at 91
	assert.Equal(t, int64(91), TotalDuration(channels))
	assert.Equal(t, int64(1200), (&Document{Duration: 1200, Channels: channels}).TotalDuration())
	assert.Zero(t, TotalDuration(nil))
}
