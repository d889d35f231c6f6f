package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/subconv/mdvd/internal/subtitle"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [subtitle_file]",
	Short: "Rewrite a MicroDVD file in canonical form",
	Long: `Parse a MicroDVD (.sub) file and print it back in canonical form.

Lines sharing the same start and end frame are merged into one container
line, and formatting tags common to every merged line are hoisted to a
single group tag. Already canonical files come back unchanged.

Examples:
  mdvd fmt movie.sub
  mdvd fmt movie.sub --write`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().
		BoolP("write", "w", false, "Rewrite the source file instead of printing to stdout")
}

func runFmt(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]
	write, _ := cmd.Flags().GetBool("write")

	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", subtitlePath)
	}

	file, err := subtitle.Open(subtitlePath)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", subtitlePath, err)
	}

	logger.Debugw("Formatting subtitle file",
		"input", subtitlePath,
		"entries", len(file.Entries()),
	)

	if write {
		if err := file.Write(subtitlePath); err != nil {
			return fmt.Errorf("failed to rewrite %s: %w", subtitlePath, err)
		}
		fmt.Printf("Subtitle formatted: %s\n", subtitlePath)
		return nil
	}

	fmt.Println(string(file.Data()))
	return nil
}
