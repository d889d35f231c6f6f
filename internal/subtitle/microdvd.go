package subtitle

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultFrameRate is the frame rate assumed until SetFrameRate is called.
const DefaultFrameRate = 25.0

// MicroDVDFile is a parsed MicroDVD (.sub) file. Each pipe-separated
// segment of a container line becomes one stored line, so the file can be
// regrouped canonically on output.
type MicroDVDFile struct {
	fps   float64
	lines []mdvdLine
}

// mdvdLine is one displayable segment. tags holds the normalized tag values,
// group-scoped tags of the whole container line first (in encounter order
// across segments), then the segment's own tags.
type mdvdLine struct {
	startFrame int64
	endFrame   int64
	tags       []string
	text       string
}

// LineError reports the input line (1-based) that failed to match the
// MicroDVD grammar, with an optional cause.
type LineError struct {
	Line int
	Msg  string
}

func (e *LineError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("parse error at line %d", e.Line)
	}
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Msg)
}

// a container line starts with "{start_frame}{end_frame}"
var mdvdFrameHeaderRegex = regexp.MustCompile(`^\{(\d+)\}\{(\d+)\}`)

// ParseMicroDVD parses the complete text of a .sub file. A line looks like
// "{0}{25}{C:$0000ff}{y:b,u}Hello!|{y:i}Hello2!" where 0 and 25 are the
// start and end frames and the braced blocks before each text are
// formatting tags. Any line that fails the grammar aborts the whole parse;
// there is no partial result.
func ParseMicroDVD(text string) (*MicroDVDFile, error) {
	text = strings.TrimPrefix(text, "\ufeff")

	var lines []mdvdLine
	for lineNum, line := range splitLines(text) {
		parsed, err := parseContainerLine(lineNum+1, line)
		if err != nil {
			return nil, err
		}
		lines = append(lines, parsed...)
	}

	return &MicroDVDFile{
		fps:   DefaultFrameRate,
		lines: lines,
	}, nil
}

// splitLines splits on line terminators. A trailing empty segment produced
// solely by a final terminator is an artifact and is dropped; an embedded
// empty line is kept and will fail the grammar.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	parts := strings.Split(text, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}

// parseContainerLine matches one physical line, which may carry several
// pipe-separated segments, and returns one mdvdLine per segment.
func parseContainerLine(lineNum int, line string) ([]mdvdLine, error) {
	header := mdvdFrameHeaderRegex.FindStringSubmatch(line)
	if header == nil {
		return nil, &LineError{Line: lineNum, Msg: "expected {start}{end} frame header"}
	}
	startFrame, err := strconv.ParseInt(header[1], 10, 64)
	if err != nil {
		return nil, &LineError{Line: lineNum, Msg: fmt.Sprintf("invalid start frame: %v", err)}
	}
	endFrame, err := strconv.ParseInt(header[2], 10, 64)
	if err != nil {
		return nil, &LineError{Line: lineNum, Msg: fmt.Sprintf("invalid end frame: %v", err)}
	}

	type rawSegment struct {
		tags []string
		text string
	}

	// group-scoped tags apply to every segment of this line, in encounter
	// order across all segments
	var groupTags []string
	var segments []rawSegment

	rest := line[len(header[0]):]
	for {
		var seg rawSegment

		// a segment starts with zero or more "{...}" tag blocks; a brace
		// without a closing "}" is literal text, not a tag
		for strings.HasPrefix(rest, "{") {
			end := strings.IndexByte(rest, '}')
			if end < 0 {
				break
			}
			raw := rest[1:end]
			if isGroupScoped(raw) {
				groupTags = append(groupTags, normalizeTag(raw))
			} else {
				seg.tags = append(seg.tags, normalizeTag(raw))
			}
			rest = rest[end+1:]
		}

		// literal text runs to the next segment separator
		sep := strings.IndexByte(rest, '|')
		if sep < 0 {
			seg.text = rest
			segments = append(segments, seg)
			break
		}
		seg.text = rest[:sep]
		rest = rest[sep+1:]
		segments = append(segments, seg)
	}

	lines := make([]mdvdLine, 0, len(segments))
	for _, seg := range segments {
		tags := make([]string, 0, len(groupTags)+len(seg.tags))
		tags = append(tags, groupTags...)
		tags = append(tags, seg.tags...)
		lines = append(lines, mdvdLine{
			startFrame: startFrame,
			endFrame:   endFrame,
			tags:       tags,
			text:       seg.text,
		})
	}
	return lines, nil
}

func (f *MicroDVDFile) Format() Format {
	return FormatMicroDVD
}

// FrameRate returns the frame rate used for frame/time conversion.
func (f *MicroDVDFile) FrameRate() float64 {
	return f.fps
}

// SetFrameRate changes the frame rate used for frame/time conversion.
// Stored frame numbers are untouched.
func (f *MicroDVDFile) SetFrameRate(fps float64) {
	f.fps = fps
}

// Entries projects every stored line to a timed entry, in storage order.
func (f *MicroDVDFile) Entries() []Entry {
	entries := make([]Entry, 0, len(f.lines))
	for _, line := range f.lines {
		text := line.text
		entries = append(entries, Entry{
			StartTime: frameToDuration(line.startFrame, f.fps),
			EndTime:   frameToDuration(line.endFrame, f.fps),
			Text:      &text,
		})
	}
	return entries
}

// UpdateEntries retimes the stored lines from the given entries, which must
// match the line count one to one. An entry with text replaces the line's
// text; formatting tags are never touched.
func (f *MicroDVDFile) UpdateEntries(entries []Entry) error {
	if len(entries) != len(f.lines) {
		return fmt.Errorf(
			"entry count mismatch: got %d entries for %d lines",
			len(entries),
			len(f.lines),
		)
	}
	for i, entry := range entries {
		f.lines[i].startFrame = durationToFrame(entry.StartTime, f.fps)
		f.lines[i].endFrame = durationToFrame(entry.EndTime, f.fps)
		if entry.Text != nil {
			f.lines[i].text = *entry.Text
		}
	}
	return nil
}

func (f *MicroDVDFile) Write(path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, f.Data(), 0644)
}

// frame to wall clock, truncating to whole milliseconds
func frameToDuration(frame int64, fps float64) time.Duration {
	ms := int64(float64(frame) * 1000.0 / fps)
	return time.Duration(ms) * time.Millisecond
}

// wall clock to frame, truncating toward zero; the round trip is lossy
// whenever fps does not evenly divide the time
func durationToFrame(d time.Duration, fps float64) int64 {
	return int64(d.Seconds() * fps)
}
