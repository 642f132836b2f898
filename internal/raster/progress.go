package raster

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// progressBar renders an in-place terminal progress bar for the
// rasterisation pass. Increment is safe for concurrent use from multiple
// row-worker goroutines; each call redraws synchronously rather than
// running a separate refresh loop, since a classification pass tops out at
// a few hundred rows and never runs long enough to need a background
// ticker or a rate/ETA estimate.
type progressBar struct {
	total     int64
	processed atomic.Int64
	label     string
	barWidth  int
	mu        sync.Mutex
}

func newProgressBar(label string, total int64) *progressBar {
	return &progressBar{
		total:    total,
		label:    label,
		barWidth: 30,
	}
}

// Increment marks one more row as processed and redraws the bar.
func (pb *progressBar) Increment() {
	pb.processed.Add(1)
	pb.draw()
}

// Finish prints the final bar state with a trailing newline.
func (pb *progressBar) Finish() {
	pb.draw()
	fmt.Fprint(os.Stderr, "\n")
}

func (pb *progressBar) draw() {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	processed := pb.processed.Load()
	total := pb.total

	var frac float64
	if total > 0 {
		frac = float64(processed) / float64(total)
	}
	if frac > 1 {
		frac = 1
	}

	filled := int(float64(pb.barWidth) * frac)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", pb.barWidth-filled)

	fmt.Fprintf(os.Stderr, "\r%s [%s] %3.0f%%  %d/%d rows\033[K",
		pb.label, bar, frac*100, processed, total)
}
