package subtitle

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// parse a document and serialize it back to canonical text
func reconstruct(t *testing.T, input string) string {
	t.Helper()
	file, err := ParseMicroDVD(input)
	if err != nil {
		t.Fatalf("ParseMicroDVD(%q) returned error: %v", input, err)
	}
	return string(file.Data())
}

func TestMicroDVDReconstruction(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "{0}{25}Hello!", "{0}{25}Hello!"},
		{"line tag kept", "{0}{25}{y:i}Hello!", "{0}{25}{y:i}Hello!"},
		{
			"single segment never gets a group tag",
			"{0}{25}{Y:i}Hello!",
			"{0}{25}{y:i}Hello!",
		},
		{
			"trailing terminator with empty text",
			"{0}{25}{Y:i}\n",
			"{0}{25}{y:i}",
		},
		{
			"common tag hoisted within one line",
			"{0}{25}{y:i}Text1|{y:i}Text2",
			"{0}{25}{Y:i}Text1|Text2",
		},
		{
			"equal times merge across lines",
			"{0}{25}{y:i}Text1\n{0}{25}{y:i}Text2",
			"{0}{25}{Y:i}Text1|Text2",
		},
		{
			"only common tags hoisted",
			"{0}{25}{y:i}{y:b}Text1\n{0}{25}{y:i}Text2",
			"{0}{25}{Y:i}{y:b}Text1|Text2",
		},
		{
			"different times never merge",
			"{0}{25}{y:i}Text1\n{0}{26}{y:i}Text2",
			"{0}{25}{y:i}Text1\n{0}{26}{y:i}Text2",
		},
		{
			"group tag rehoisted on output",
			"{0}{25}{Y:i}Text1|Text2",
			"{0}{25}{Y:i}Text1|Text2",
		},
		{
			"multiple common tags sorted",
			"{0}{25}{y:b}{y:a}Text1|{y:a}{y:b}Text2",
			"{0}{25}{Y:a}{Y:b}Text1|Text2",
		},
		{
			"merge keeps original order on ties",
			"{0}{25}Second\n{0}{25}First",
			"{0}{25}Second|First",
		},
		{
			"lines sorted by time",
			"{30}{50}B\n{0}{25}A",
			"{0}{25}A\n{30}{50}B",
		},
		{
			"crlf terminators",
			"{0}{25}A\r\n{30}{50}B",
			"{0}{25}A\n{30}{50}B",
		},
		{"bom stripped", "\ufeff{0}{25}Hello!", "{0}{25}Hello!"},
		{"empty input", "", ""},
		{
			"duplicate tags collapse",
			"{0}{25}{y:i}{y:i}Text",
			"{0}{25}{y:i}Text",
		},
		{
			"unterminated brace is literal text",
			"{0}{25}{unclosed",
			"{0}{25}{unclosed",
		},
		{
			"tag content may contain a pipe",
			"{0}{25}{y:a|b}Text",
			"{0}{25}{y:a|b}Text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reconstruct(t, tt.input)
			if got != tt.expected {
				t.Errorf(
					"reconstruct(%q) = %q, want %q",
					tt.input,
					got,
					tt.expected,
				)
			}

			// canonical output must be a fixed point of parse+serialize
			again := reconstruct(t, tt.expected)
			if again != tt.expected {
				t.Errorf(
					"canonical form is not stable: reconstruct(%q) = %q",
					tt.expected,
					again,
				)
			}
		})
	}
}

func TestParseMicroDVDErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"no frame header", "garbage", 1},
		{"missing end frame", "{0}Text", 1},
		{"empty frame block", "{}{25}Text", 1},
		{"whitespace only line", "   ", 1},
		{"second line malformed", "{0}{25}Text\nnot a line", 2},
		{"embedded empty line", "{0}{25}A\n\n{0}{30}B", 2},
		{"lone terminator", "\n", 1},
		{"frame overflows int64", "{99999999999999999999}{25}Text", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMicroDVD(tt.input)
			if err == nil {
				t.Fatalf("ParseMicroDVD(%q) succeeded, want error", tt.input)
			}
			var lineErr *LineError
			if !errors.As(err, &lineErr) {
				t.Fatalf("error %v is not a *LineError", err)
			}
			if lineErr.Line != tt.line {
				t.Errorf(
					"error at line %d, want line %d",
					lineErr.Line,
					tt.line,
				)
			}
		})
	}
}

func TestParseMicroDVDAbortsWholeDocument(t *testing.T) {
	file, err := ParseMicroDVD("{0}{25}Good\nbad line\n{30}{50}Also good")
	if err == nil {
		t.Fatal("expected error for malformed line")
	}
	if file != nil {
		t.Errorf("expected no partial document, got %d entries", len(file.Entries()))
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q should name line 2", err.Error())
	}
}

func TestEntries(t *testing.T) {
	file, err := ParseMicroDVD("{0}{25}Hello!|World\n{50}{75}Bye")
	if err != nil {
		t.Fatalf("ParseMicroDVD returned error: %v", err)
	}

	entries := file.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries (one per segment), got %d", len(entries))
	}

	if entries[0].StartTime != 0 {
		t.Errorf("entry 0: expected start 0, got %v", entries[0].StartTime)
	}
	if entries[0].EndTime != time.Second {
		t.Errorf("entry 0: expected end 1s at 25 fps, got %v", entries[0].EndTime)
	}
	if entries[0].TextValue() != "Hello!" {
		t.Errorf("entry 0: expected text 'Hello!', got %q", entries[0].TextValue())
	}
	if entries[1].TextValue() != "World" {
		t.Errorf("entry 1: expected text 'World', got %q", entries[1].TextValue())
	}
	if entries[2].StartTime != 2*time.Second {
		t.Errorf("entry 2: expected start 2s, got %v", entries[2].StartTime)
	}
}

func TestEntriesUseFrameRate(t *testing.T) {
	file, err := ParseMicroDVD("{0}{25}Hello!")
	if err != nil {
		t.Fatalf("ParseMicroDVD returned error: %v", err)
	}
	if file.FrameRate() != DefaultFrameRate {
		t.Errorf("expected default frame rate 25, got %v", file.FrameRate())
	}

	file.SetFrameRate(23.976)

	// 25 * 1000 / 23.976 = 1042.7..., truncated to whole milliseconds
	want := 1042 * time.Millisecond
	if got := file.Entries()[0].EndTime; got != want {
		t.Errorf("expected end %v at 23.976 fps, got %v", want, got)
	}
}

func TestFrameTimeConversion(t *testing.T) {
	if got := frameToDuration(25, 25.0); got != time.Second {
		t.Errorf("frameToDuration(25, 25) = %v, want 1s", got)
	}
	if got := frameToDuration(25, 23.976); got != 1042*time.Millisecond {
		t.Errorf("frameToDuration(25, 23.976) = %v, want 1.042s", got)
	}
	if got := durationToFrame(time.Second, 25.0); got != 25 {
		t.Errorf("durationToFrame(1s, 25) = %d, want 25", got)
	}
	if got := durationToFrame(999*time.Millisecond, 25.0); got != 24 {
		t.Errorf("durationToFrame(999ms, 25) = %d, want 24", got)
	}
	// both directions truncate, so the round trip may lose a frame
	if got := durationToFrame(1042*time.Millisecond, 23.976); got != 24 {
		t.Errorf("durationToFrame(1.042s, 23.976) = %d, want 24", got)
	}
}

func TestUpdateEntries(t *testing.T) {
	file, err := ParseMicroDVD("{0}{25}{y:i}Hello!")
	if err != nil {
		t.Fatalf("ParseMicroDVD returned error: %v", err)
	}

	// retime only: nil text keeps the stored dialogue and tags
	err = file.UpdateEntries([]Entry{
		{StartTime: 2 * time.Second, EndTime: 3 * time.Second},
	})
	if err != nil {
		t.Fatalf("UpdateEntries returned error: %v", err)
	}
	if got := string(file.Data()); got != "{50}{75}{y:i}Hello!" {
		t.Errorf("after retime, got %q, want %q", got, "{50}{75}{y:i}Hello!")
	}

	// an entry with text replaces the dialogue but never the tags
	text := "Goodbye!"
	err = file.UpdateEntries([]Entry{
		{StartTime: 2 * time.Second, EndTime: 3 * time.Second, Text: &text},
	})
	if err != nil {
		t.Fatalf("UpdateEntries returned error: %v", err)
	}
	if got := string(file.Data()); got != "{50}{75}{y:i}Goodbye!" {
		t.Errorf("after text update, got %q, want %q", got, "{50}{75}{y:i}Goodbye!")
	}
}

func TestUpdateEntriesCardinalityMismatch(t *testing.T) {
	file, err := ParseMicroDVD("{0}{25}One|Two")
	if err != nil {
		t.Fatalf("ParseMicroDVD returned error: %v", err)
	}

	if err := file.UpdateEntries([]Entry{{}}); err == nil {
		t.Error("expected error for entry count mismatch")
	}

	// a failed update must not corrupt the document
	if got := string(file.Data()); got != "{0}{25}One|Two" {
		t.Errorf("document changed after failed update: %q", got)
	}
}

func TestGroupTagAppliesToEverySegment(t *testing.T) {
	// the group tag sits on the second segment but covers both
	file, err := ParseMicroDVD("{0}{25}Text1|{Y:i}Text2")
	if err != nil {
		t.Fatalf("ParseMicroDVD returned error: %v", err)
	}
	if got := string(file.Data()); got != "{0}{25}{Y:i}Text1|Text2" {
		t.Errorf("got %q, want %q", got, "{0}{25}{Y:i}Text1|Text2")
	}
}

func TestSerializeIdempotent(t *testing.T) {
	input := "{30}{50}{y:b}B\n{0}{25}{Y:u}Hi|there\n{30}{50}{y:b}{y:i}C"
	once := reconstruct(t, input)
	twice := reconstruct(t, once)
	if once != twice {
		t.Errorf("serialize not idempotent: %q != %q", once, twice)
	}
}
