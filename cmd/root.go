package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	debugMode bool
	logPath   string
)

// rootCmd is the base command; the work lives in the subcommands.
var rootCmd = &cobra.Command{
	Use:   "iconcompare",
	Short: "Content-aligned similarity scoring for game icon renditions",
	Long: `iconcompare measures how visually similar two renditions of the same
game icon are. It isolates the non-transparent content of each image,
aligns both to a shared resolution, and scores them with a suite of
classical pixel and structural metrics plus perceptual hash distances.`,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false,
		"enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logPath, "logfile", "iconcompare.log",
		"log file path (used when --debug is set or a batch runs)")
}
