package subtitle

import (
	"fmt"
	"sort"
	"strings"
)

// Data renders the file back into canonical MicroDVD text. Lines are sorted
// by time range, lines sharing an identical range are merged into one
// container line, and tags common to every member of a merge are hoisted to
// the container as group-scoped tags. Reserializing canonical output leaves
// it unchanged.
func (f *MicroDVDFile) Data() []byte {
	sorted := make([]mdvdLine, len(f.lines))
	copy(sorted, f.lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].startFrame != sorted[j].startFrame {
			return sorted[i].startFrame < sorted[j].startFrame
		}
		return sorted[i].endFrame < sorted[j].endFrame
	})

	var sb strings.Builder
	for start := 0; start < len(sorted); {
		end := start + 1
		for end < len(sorted) &&
			sorted[end].startFrame == sorted[start].startFrame &&
			sorted[end].endFrame == sorted[start].endFrame {
			end++
		}
		if start != 0 {
			sb.WriteByte('\n')
		}
		writeContainerLine(&sb, sorted[start:end])
		start = end
	}
	return []byte(sb.String())
}

// writeContainerLine emits one group of lines sharing a time range as a
// single "|"-joined container line.
func writeContainerLine(sb *strings.Builder, group []mdvdLine) {
	common := commonTags(group)
	commonSet := make(map[string]struct{}, len(common))
	for _, tag := range common {
		commonSet[tag] = struct{}{}
	}

	fmt.Fprintf(sb, "{%d}{%d}", group[0].startFrame, group[0].endFrame)
	for _, tag := range common {
		sb.WriteByte('{')
		sb.WriteString(renderTag(tag, true))
		sb.WriteByte('}')
	}

	for i, line := range group {
		if i != 0 {
			sb.WriteByte('|')
		}
		// individual tags in encounter order, duplicates collapsed
		emitted := make(map[string]struct{}, len(line.tags))
		for _, tag := range line.tags {
			if _, ok := commonSet[tag]; ok {
				continue
			}
			if _, ok := emitted[tag]; ok {
				continue
			}
			emitted[tag] = struct{}{}
			sb.WriteByte('{')
			sb.WriteString(renderTag(tag, false))
			sb.WriteByte('}')
		}
		sb.WriteString(line.text)
	}
}

// commonTags returns the tags shared by every member of the group, sorted by
// normalized value so output bytes are deterministic. A group of one hoists
// nothing: all of its tags stay individual.
func commonTags(group []mdvdLine) []string {
	if len(group) < 2 {
		return nil
	}
	common := make(map[string]struct{}, len(group[0].tags))
	for _, tag := range group[0].tags {
		common[tag] = struct{}{}
	}
	for _, line := range group[1:] {
		seen := make(map[string]struct{}, len(line.tags))
		for _, tag := range line.tags {
			seen[tag] = struct{}{}
		}
		for tag := range common {
			if _, ok := seen[tag]; !ok {
				delete(common, tag)
			}
		}
	}
	tags := make([]string, 0, len(common))
	for tag := range common {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
