package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"iconcompare/comparator"
	"iconcompare/logging"
	"iconcompare/utils"

	"github.com/spf13/cobra"
)

var (
	compareVerbose bool
	compareJSON    bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <imageA> <imageB>",
	Short: "Compare two images and print the similarity report",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var logger *logging.Logger
		if debugMode {
			l, err := logging.NewFileLogger(logPath, true)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to set up logging: %v\n", err)
			} else {
				logger = l
				defer logger.Close()
			}
		}

		report, err := comparator.Compare(args[0], args[1], comparator.Options{
			Verbose: compareVerbose,
			Logger:  logger,
		})
		if err != nil {
			return err
		}

		if compareJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		printReport(args[0], args[1], report)
		return nil
	},
}

func printReport(pathA, pathB string, r *comparator.Report) {
	fmt.Printf("Image A: %s (content %s)\n", pathA,
		utils.FormatSize(r.ContentWidthA, r.ContentHeightA))
	fmt.Printf("Image B: %s (content %s)\n", pathB,
		utils.FormatSize(r.ContentWidthB, r.ContentHeightB))
	fmt.Printf("Aligned size:          %s\n",
		utils.FormatSize(r.AlignedWidth, r.AlignedHeight))
	fmt.Printf("Perceptual similarity: %.4f\n", r.PerceptualSimilarity)
	fmt.Printf("SSIM:                  %.4f\n", r.SSIM)
	fmt.Printf("Pixel similarity:      %.4f\n", r.PixelSimilarity)
	fmt.Printf("Histogram similarity:  %.4f\n", r.HistogramSimilarity)
	fmt.Printf("MSE:                   %.2f\n", r.MSE)
	fmt.Printf("pHash distance:        %d\n", r.PHashDistance)
	fmt.Printf("dHash distance:        %d\n", r.DHashDistance)
	if r.Verdict != "" {
		fmt.Printf("Verdict:               %s\n", r.Verdict)
	}
}

func init() {
	compareCmd.Flags().BoolVarP(&compareVerbose, "verbose", "v", false,
		"include the qualitative verdict in the report")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false,
		"print the report as JSON")
	rootCmd.AddCommand(compareCmd)
}
