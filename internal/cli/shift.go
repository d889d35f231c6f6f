package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/subconv/mdvd/internal/subtitle"
)

var shiftCmd = &cobra.Command{
	Use:   "shift [subtitle_file]",
	Short: "Shift all subtitle timings by a duration",
	Long: `Shift every entry of a MicroDVD (.sub) file by a fixed offset.

The offset is applied in wall clock time and converted back to frames with
the frame rate given by --fps, so the same offset works for files with
different frame rates. Formatting tags and text are left untouched.

Examples:
  mdvd shift movie.sub --by 1.5s
  mdvd shift movie.sub --by -200ms --fps 23.976 -o fixed.sub`,
	Args: cobra.ExactArgs(1),
	RunE: runShift,
}

func init() {
	rootCmd.AddCommand(shiftCmd)

	shiftCmd.Flags().
		DurationP("by", "b", 0, "Offset to apply, e.g. 1.5s or -200ms")
	_ = shiftCmd.MarkFlagRequired("by")
}

func runShift(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]

	by, _ := cmd.Flags().GetDuration("by")
	fps, _ := cmd.Flags().GetFloat64("fps")
	outputPath, _ := cmd.Flags().GetString("output")

	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", subtitlePath)
	}
	if outputPath == "" {
		outputPath = subtitlePath
	}

	file, err := subtitle.Open(subtitlePath)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", subtitlePath, err)
	}
	if mdvd, ok := file.(*subtitle.MicroDVDFile); ok {
		mdvd.SetFrameRate(fps)
	}

	entries := file.Entries()
	negative := 0
	for i := range entries {
		entries[i].StartTime += by
		entries[i].EndTime += by
		// retime only, keep the stored dialogue
		entries[i].Text = nil
		if entries[i].StartTime < 0 {
			negative++
		}
	}
	if negative > 0 {
		logger.Warnw("Shift moves entries before time zero",
			"entries", negative,
			"by", by.String(),
		)
	}

	if err := file.UpdateEntries(entries); err != nil {
		return fmt.Errorf("failed to update entries: %w", err)
	}
	if err := file.Write(outputPath); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logger.Infow("Shifted subtitle timings",
		"input", subtitlePath,
		"output", outputPath,
		"entries", len(entries),
		"by", by.String(),
		"fps", fps,
	)
	fmt.Printf("Subtitle shifted successfully: %s\n", outputPath)

	return nil
}
