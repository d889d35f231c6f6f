package cli

import (
	"github.com/spf13/cobra"

	"github.com/subconv/mdvd/internal/logging"
	"github.com/subconv/mdvd/internal/subtitle"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mdvd",
	Short: "MicroDVD subtitle converter and formatter",
	Long: `Mdvd is a CLI tool for working with MicroDVD (.sub) subtitle files.

It converts frame-based MicroDVD subtitles to time-based formats, rewrites
files into a canonical form, and shifts subtitle timing.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		Float64("fps", subtitle.DefaultFrameRate, "Frames per second of the associated video")
}
