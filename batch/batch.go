// Package batch compares every matched large/small icon pair found under
// two directory roots, fanning the comparisons out over a bounded worker
// pool and persisting results so unchanged pairs are skipped on re-runs.
package batch

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	"iconcompare/comparator"
	"iconcompare/database"
	"iconcompare/logging"
	"iconcompare/types"
)

// Options configures one batch run.
type Options struct {
	LargeRoot    string
	SmallRoot    string
	ForceRewrite bool
	MaxWorkers   int
	Logger       *logging.Logger
}

// Run indexes both roots, matches pairs by name, and compares each pair.
// Pairs whose stored result matches both files' current modification times
// are skipped unless ForceRewrite is set. Canceling ctx stops dispatching
// new pairs; in-flight comparisons finish.
func Run(ctx context.Context, db *sql.DB, opts Options) error {
	largeIndex, err := IndexImages(opts.LargeRoot)
	if err != nil {
		return fmt.Errorf("cannot index %s: %w", opts.LargeRoot, err)
	}
	smallIndex, err := IndexImages(opts.SmallRoot)
	if err != nil {
		return fmt.Errorf("cannot index %s: %w", opts.SmallRoot, err)
	}

	pairs := MatchPairs(largeIndex, smallIndex)
	opts.Logger.Infof("indexed %d large and %d small icons, matched %d pairs",
		len(largeIndex), len(smallIndex), len(pairs))

	fmt.Printf("Comparing %d icon pairs (%d large, %d small indexed)...\n",
		len(pairs), len(largeIndex), len(smallIndex))

	workers := opts.MaxWorkers
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	resultsChan := make(chan PairOutcome, 100)
	semaphore := make(chan struct{}, workers)

	tracker := NewProgressTracker(len(pairs), resultsChan, opts.Logger)
	startTime := time.Now()

dispatch:
	for _, pair := range pairs {
		select {
		case <-ctx.Done():
			opts.Logger.Warnf("batch canceled after dispatching part of the work")
			break dispatch
		default:
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(p types.IconPair) {
			defer wg.Done()
			defer func() { <-semaphore }()
			resultsChan <- comparePair(db, p, opts)
		}(pair)
	}

	wg.Wait()
	close(resultsChan)
	tracker.Stop()

	processed, skipped, errCount := tracker.Counts()
	elapsed := time.Since(startTime)

	fmt.Println("\nBatch complete.")
	fmt.Printf("Compared %d pairs in %v (%d skipped as unchanged, %d errors).\n",
		processed, elapsed.Round(time.Second), skipped, errCount)

	if stats, err := database.GetBatchStats(db); err == nil {
		fmt.Printf("Stored results: %d total, %d near-identical, %d below the similarity floor.\n",
			stats.TotalPairs, stats.NearIdentical, stats.BelowWeak)
	}

	if errCount > 0 {
		fmt.Println("Check the log file for details.")
	}
	return ctx.Err()
}

// comparePair runs one comparison and stores the outcome.
func comparePair(db *sql.DB, pair types.IconPair, opts Options) PairOutcome {
	outcome := PairOutcome{Name: pair.Name, Large: pair.LargePath, Small: pair.SmallPath}

	largeMod, smallMod, err := modTimes(pair)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	if !opts.ForceRewrite {
		unchanged, checkErr := isUnchanged(db, pair, largeMod, smallMod)
		if checkErr != nil {
			outcome.Err = checkErr
			return outcome
		}
		if unchanged {
			opts.Logger.Debugf("skipping unchanged pair: %s", pair.Name)
			outcome.Skipped = true
			return outcome
		}
	}

	report, err := comparator.Compare(pair.LargePath, pair.SmallPath, comparator.Options{
		Verbose: true,
		Logger:  opts.Logger,
	})
	if err != nil {
		outcome.Err = fmt.Errorf("comparison failed for %s: %w", pair.Name, err)
		return outcome
	}

	rec := types.PairRecord{
		Name:            pair.Name,
		LargePath:       pair.LargePath,
		SmallPath:       pair.SmallPath,
		LargeModifiedAt: largeMod,
		SmallModifiedAt: smallMod,
		Perceptual:      report.PerceptualSimilarity,
		Pixel:           report.PixelSimilarity,
		SSIM:            report.SSIM,
		Histogram:       report.HistogramSimilarity,
		MSE:             report.MSE,
		PHashDistance:   report.PHashDistance,
		DHashDistance:   report.DHashDistance,
		AlignedWidth:    report.AlignedWidth,
		AlignedHeight:   report.AlignedHeight,
		LargeContentW:   report.ContentWidthA,
		LargeContentH:   report.ContentHeightA,
		SmallContentW:   report.ContentWidthB,
		SmallContentH:   report.ContentHeightB,
		Verdict:         report.Verdict,
	}

	if err := database.StorePairResult(db, rec); err != nil {
		outcome.Err = err
	}
	return outcome
}

// modTimes returns both files' modification times in RFC3339.
func modTimes(pair types.IconPair) (string, string, error) {
	largeInfo, err := os.Stat(pair.LargePath)
	if err != nil {
		return "", "", fmt.Errorf("cannot stat %s: %w", pair.LargePath, err)
	}
	smallInfo, err := os.Stat(pair.SmallPath)
	if err != nil {
		return "", "", fmt.Errorf("cannot stat %s: %w", pair.SmallPath, err)
	}
	return largeInfo.ModTime().Format(time.RFC3339),
		smallInfo.ModTime().Format(time.RFC3339), nil
}

// isUnchanged reports whether a stored result exists for the pair and both
// files still carry the modification times it was computed against.
func isUnchanged(db *sql.DB, pair types.IconPair, largeMod, smallMod string) (bool, error) {
	exists, storedLarge, storedSmall, err := database.CheckPairExists(db, pair.LargePath, pair.SmallPath)
	if err != nil {
		return false, err
	}
	return exists && storedLarge == largeMod && storedSmall == smallMod, nil
}
