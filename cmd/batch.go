package cmd

import (
	"fmt"
	"io"
	"os"

	"iconcompare/batch"
	"iconcompare/database"
	"iconcompare/logging"
	"iconcompare/report"
	"iconcompare/signalhandler"
	"iconcompare/utils"

	"github.com/spf13/cobra"
)

var (
	batchLargeRoot string
	batchSmallRoot string
	batchOutPath   string
	batchDBPath    string
	batchForce     bool
	batchWorkers   int
)

var batchCmd = &cobra.Command{
	Use:   "batch --large DIR --small DIR",
	Short: "Compare every matched icon pair under two directory roots",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, root := range []string{batchLargeRoot, batchSmallRoot} {
			info, err := os.Stat(root)
			if err != nil {
				return fmt.Errorf("cannot access directory %s: %w", root, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("path is not a directory: %s", root)
			}
		}

		logger, err := logging.NewFileLogger(logPath, debugMode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to set up logging: %v\n", err)
			logger = logging.New(io.Discard, false)
		}
		defer logger.Close()

		dbPath := batchDBPath
		if dbPath == "" {
			dbPath = utils.GetDefaultDatabasePath()
		}
		db, err := database.InitDatabase(dbPath)
		if err != nil {
			return fmt.Errorf("cannot initialize result database: %w", err)
		}
		defer db.Close()

		ctx, cancel := signalhandler.SetupContext()
		defer cancel()

		workers := batchWorkers
		if workers <= 0 {
			workers = signalhandler.GetOptimalProcs()
		}

		err = batch.Run(ctx, db, batch.Options{
			LargeRoot:    batchLargeRoot,
			SmallRoot:    batchSmallRoot,
			ForceRewrite: batchForce,
			MaxWorkers:   workers,
			Logger:       logger,
		})
		if err != nil {
			return err
		}

		records, err := database.LoadAllRecords(db)
		if err != nil {
			return err
		}
		if err := report.WriteCSV(batchOutPath, records); err != nil {
			return err
		}

		fmt.Printf("Report written to %s (database: %s)\n", batchOutPath, dbPath)
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchLargeRoot, "large", "",
		"directory tree holding the large icon renditions")
	batchCmd.Flags().StringVar(&batchSmallRoot, "small", "",
		"directory tree holding the small icon renditions")
	batchCmd.Flags().StringVar(&batchOutPath, "out", "comparison_results.csv",
		"CSV report output path")
	batchCmd.Flags().StringVar(&batchDBPath, "database", "",
		"result database path (default: comparisons.db next to the executable)")
	batchCmd.Flags().BoolVar(&batchForce, "force", false,
		"recompare pairs even when both files are unchanged")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0,
		"number of concurrent comparisons (default: sized to the CPU count)")
	batchCmd.MarkFlagRequired("large")
	batchCmd.MarkFlagRequired("small")
	rootCmd.AddCommand(batchCmd)
}
