// Package subtitle reads SubRip and WebVTT cue files into timed entries.
package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Format identifies a supported cue file format
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

// Entry is one cue read from a subtitle file
type Entry struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// cueLine matches "[hh:]mm:ss(,|.)mmm --> [hh:]mm:ss(,|.)mmm" with optional trailing cue settings
var cueLine = regexp.MustCompile(
	`^\s*(?:(\d+):)?(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(?:(\d+):)?(\d{2}):(\d{2})[,.](\d{3})`,
)

// FormatFromPath returns the format implied by a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		return FormatSRT, true
	case ".vtt":
		return FormatVTT, true
	default:
		return "", false
	}
}

// Parse reads all entries from r in the given format.
func Parse(r io.Reader, format Format) ([]Entry, error) {
	switch format {
	case FormatSRT:
		return ParseSRT(r)
	case FormatVTT:
		return ParseVTT(r)
	default:
		return nil, fmt.Errorf("unsupported subtitle format: %s", format)
	}
}

// ParseSRT reads SubRip cues. Numeric counters are optional. Cue text is
// returned in Unicode NFC form.
func ParseSRT(r io.Reader) ([]Entry, error) {
	return parse(r, FormatSRT)
}

// ParseVTT reads WebVTT cues, skipping the header and NOTE, STYLE and REGION blocks.
func ParseVTT(r io.Reader) ([]Entry, error) {
	return parse(r, FormatVTT)
}

func parse(r io.Reader, format Format) ([]Entry, error) {
	var (
		entries   []Entry
		current   *Entry
		textLines []string
		skipBlock bool
		lineNum   int
	)

	flush := func() {
		if current != nil && len(textLines) > 0 {
			current.Text = norm.NFC.String(strings.Join(textLines, "\n"))
			entries = append(entries, *current)
		}
		current = nil
		textLines = nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		lineNum++
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
			if format == FormatVTT {
				if !strings.HasPrefix(strings.TrimSpace(line), "WEBVTT") {
					return nil, fmt.Errorf("missing WEBVTT header")
				}
				skipBlock = true
				continue
			}
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			skipBlock = false
			continue
		}
		if skipBlock {
			continue
		}

		if format == FormatVTT && current == nil && isVTTMetaBlock(trimmed) {
			skipBlock = true
			continue
		}

		if m := cueLine.FindStringSubmatch(line); m != nil {
			flush()
			start, err := timestamp(m[1], m[2], m[3], m[4])
			if err != nil {
				return nil, fmt.Errorf("invalid start timestamp at line %d: %w", lineNum, err)
			}
			end, err := timestamp(m[5], m[6], m[7], m[8])
			if err != nil {
				return nil, fmt.Errorf("invalid end timestamp at line %d: %w", lineNum, err)
			}
			current = &Entry{Index: len(entries) + 1, Start: start, End: end}
			continue
		}

		// counters and cue identifiers precede the timestamp line
		if current == nil {
			continue
		}
		textLines = append(textLines, line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", format, err)
	}
	return entries, nil
}

func isVTTMetaBlock(line string) bool {
	for _, prefix := range []string{"NOTE", "STYLE", "REGION"} {
		if line == prefix || strings.HasPrefix(line, prefix+" ") {
			return true
		}
	}
	return false
}

func timestamp(hours, minutes, seconds, millis string) (time.Duration, error) {
	var h int
	if hours != "" {
		v, err := strconv.Atoi(hours)
		if err != nil {
			return 0, err
		}
		h = v
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, err
	}
	s, err := strconv.Atoi(seconds)
	if err != nil {
		return 0, err
	}
	ms, err := strconv.Atoi(millis)
	if err != nil {
		return 0, err
	}
	if m > 59 || s > 59 {
		return 0, fmt.Errorf("out of range: %s:%s", minutes, seconds)
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}
