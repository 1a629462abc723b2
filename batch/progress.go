package batch

import (
	"fmt"
	"sync"
	"time"

	"iconcompare/logging"
)

// PairOutcome is the per-pair result flowing from the workers to the
// progress tracker.
type PairOutcome struct {
	Name    string
	Large   string
	Small   string
	Skipped bool
	Err     error
}

// ProgressTracker accumulates batch progress and periodically repaints a
// one-line status display.
type ProgressTracker struct {
	mu         sync.Mutex
	processed  int
	skipped    int
	errors     int
	totalPairs int
	ticker     *time.Ticker
	done       chan bool
	logger     *logging.Logger
}

// NewProgressTracker starts tracking a batch of totalPairs comparisons,
// consuming outcomes from resultsChan until it is closed.
func NewProgressTracker(totalPairs int, resultsChan chan PairOutcome, logger *logging.Logger) *ProgressTracker {
	tracker := &ProgressTracker{
		ticker:     time.NewTicker(500 * time.Millisecond),
		done:       make(chan bool),
		totalPairs: totalPairs,
		logger:     logger,
	}

	go tracker.displayProgress()
	go tracker.processResults(resultsChan)

	return tracker
}

func (p *ProgressTracker) displayProgress() {
	for {
		select {
		case <-p.done:
			return
		case <-p.ticker.C:
			p.mu.Lock()
			if p.errors > 0 {
				fmt.Printf("\rProgress: %d/%d (skipped: %d, errors: %d)",
					p.processed, p.totalPairs, p.skipped, p.errors)
			} else {
				fmt.Printf("\rProgress: %d/%d (skipped: %d)",
					p.processed, p.totalPairs, p.skipped)
			}
			p.mu.Unlock()
		}
	}
}

func (p *ProgressTracker) processResults(resultsChan chan PairOutcome) {
	for outcome := range resultsChan {
		p.mu.Lock()
		p.processed++
		if outcome.Skipped {
			p.skipped++
		}
		if outcome.Err != nil {
			p.errors++
		}
		p.mu.Unlock()

		if !outcome.Skipped {
			p.logger.PairProcessed(outcome.Large, outcome.Small, outcome.Err)
		}
	}
}

// Stop ends the progress display.
func (p *ProgressTracker) Stop() {
	p.ticker.Stop()
	p.done <- true
}

// Counts returns the processed/skipped/error tallies so far.
func (p *ProgressTracker) Counts() (processed, skipped, errors int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.processed, p.skipped, p.errors
}
