package subtitle

import (
	"time"
)

// Entry is one timed text cue, the exchange shape shared by all formats.
// Text is nil when the entry carries no text of its own, which lets
// UpdateEntries retime a file without touching its dialogue.
type Entry struct {
	StartTime time.Duration
	EndTime   time.Duration
	Text      *string
}

// TextValue returns the entry text, or "" when the entry carries none.
func (e Entry) TextValue() string {
	if e.Text == nil {
		return ""
	}
	return *e.Text
}

// represents supported subtitle formats
type Format string

const (
	FormatMicroDVD Format = "sub"
	FormatSRT      Format = "srt"
	FormatVTT      Format = "vtt"
)

// File is a parsed subtitle file that preserves format specific detail
// (for MicroDVD: frame timing and formatting tags) across a round trip.
type File interface {
	Format() Format
	Entries() []Entry
	UpdateEntries(entries []Entry) error
	Data() []byte
	Write(path string) error
}

// interface for writing plain timed entries to a file
type Writer interface {
	Write(entries []Entry, path string) error
}
