// Package loader reads channel declarations from YAML, JSON, SubRip and WebVTT files.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hekevintran/kinetophone/internal/models"
	"github.com/hekevintran/kinetophone/internal/subtitle"
	"github.com/hekevintran/kinetophone/internal/timing"
	"gopkg.in/yaml.v3"
)

// Format identifies a declaration file format
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
)

// ErrUnsupportedFormat is returned for files whose extension has no decoder
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Document is a complete timeline declaration. Duration is optional; when
// zero the caller derives it from the channels.
type Document struct {
	Duration int64            `json:"duration,omitempty" yaml:"duration,omitempty"`
	Channels []models.Channel `json:"channels" yaml:"channels"`
}

// FormatFromPath returns the format implied by a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".srt":
		return FormatSRT, nil
	case ".vtt":
		return FormatVTT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads the declaration file at path. Subtitle files produce one channel
// named after the file with each cue's text as the timing data.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc, err := Decode(f, format, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return doc, nil
}

// Decode reads a declaration from r. name is used as the channel name for
// subtitle formats and ignored otherwise.
func Decode(r io.Reader, format Format, name string) (*Document, error) {
	switch format {
	case FormatYAML:
		var doc Document
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("invalid yaml: %w", err)
		}
		return &doc, nil
	case FormatJSON:
		var doc Document
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
		return &doc, nil
	case FormatSRT, FormatVTT:
		entries, err := subtitle.Parse(r, subtitle.Format(format))
		if err != nil {
			return nil, err
		}
		ch := models.Channel{Name: name, Timings: make([]models.Timing, 0, len(entries))}
		for _, entry := range entries {
			ch.Timings = append(ch.Timings, models.Timing{
				Start: entry.Start.Milliseconds(),
				End:   models.Int64(entry.End.Milliseconds()),
				Data:  entry.Text,
			})
		}
		return &Document{Channels: []models.Channel{ch}}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// TotalDuration returns the explicit duration when set, otherwise the latest
// end of any valid timing. Invalid declarations are skipped; the engine
// reports them when the channels are added.
func (d *Document) TotalDuration() int64 {
	if d.Duration > 0 {
		return d.Duration
	}
	return TotalDuration(d.Channels)
}

// TotalDuration returns the latest end across all valid timings of channels.
func TotalDuration(channels []models.Channel) int64 {
	var total int64
	for _, ch := range channels {
		for _, decl := range ch.Timings {
			t, err := timing.Normalize(decl)
			if err != nil {
				continue
			}
			if t.End > total {
				total = t.End
			}
		}
	}
	return total
}
