package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/subconv/mdvd/internal/subtitle"
	"github.com/subconv/mdvd/internal/textenc"
)

var convertCmd = &cobra.Command{
	Use:   "convert [subtitle_file]",
	Short: "Convert a MicroDVD subtitle file to another format",
	Long: `Convert a MicroDVD (.sub) subtitle file to a time-based format.

Frame numbers are converted to timestamps using the frame rate given with
--fps (default 25). Input files in legacy charsets are decoded to UTF-8
automatically.

Examples:
  mdvd convert movie.sub
  mdvd convert movie.sub --format vtt --fps 23.976
  mdvd convert movie.sub -f srt -o movie.en.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringP("format", "f", "srt", "Output subtitle format (srt, vtt, sub)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]

	formatStr, _ := cmd.Flags().GetString("format")
	fps, _ := cmd.Flags().GetFloat64("fps")
	outputPath, _ := cmd.Flags().GetString("output")

	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", subtitlePath)
	}

	var format subtitle.Format
	switch strings.ToLower(formatStr) {
	case "srt":
		format = subtitle.FormatSRT
	case "vtt":
		format = subtitle.FormatVTT
	case "sub":
		format = subtitle.FormatMicroDVD
	default:
		return fmt.Errorf("unsupported format %q: use srt, vtt, or sub", formatStr)
	}

	// an explicit output path decides the format unless --format was given
	if outputPath != "" && !cmd.Flags().Changed("format") {
		format = subtitle.GetFormatFromExtension(outputPath)
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(subtitlePath, filepath.Ext(subtitlePath))
		outputPath = baseName + subtitle.GetExtensionForFormat(format)
	}

	raw, err := os.ReadFile(subtitlePath)
	if err != nil {
		return fmt.Errorf("failed to read subtitle file: %w", err)
	}
	text, charset, err := textenc.Decode(raw)
	if err != nil {
		return fmt.Errorf("failed to decode subtitle file: %w", err)
	}
	logger.Debugw("Decoded input", "charset", charset)

	file, err := subtitle.ParseMicroDVD(text)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", subtitlePath, err)
	}
	file.SetFrameRate(fps)

	entries := file.Entries()
	logger.Infow("Parsed subtitle file",
		"input", subtitlePath,
		"entries", len(entries),
		"charset", charset,
		"fps", fps,
	)

	switch format {
	case subtitle.FormatMicroDVD:
		err = file.Write(outputPath)
	default:
		var writer subtitle.Writer
		writer, err = subtitle.NewWriter(format)
		if err == nil {
			err = writer.Write(entries, outputPath)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitle converted successfully: %s\n", absOutput)

	return nil
}
