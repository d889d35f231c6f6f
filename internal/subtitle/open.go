package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/subconv/mdvd/internal/textenc"
)

// Open reads and parses a subtitle file, decoding legacy charsets to UTF-8
// on the way in.
func Open(path string) (File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".sub":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read subtitle file: %w", err)
		}
		text, _, err := textenc.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode subtitle file: %w", err)
		}
		return ParseMicroDVD(text)
	default:
		return nil, fmt.Errorf("unsupported subtitle format: %s", ext)
	}
}
