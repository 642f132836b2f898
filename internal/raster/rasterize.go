// Package raster slices a program image into a grid of classified tile
// names plus a parallel grid of raw bitmasks. Row classification is
// dispatched across a worker pool: a job channel, a sync.WaitGroup, atomic
// counters, and an optional progress bar.
package raster

import (
	"image"
	"log"
	"sync"
	"sync/atomic"

	"github.com/pspoerri/tilegrid/internal/bitmask"
	"github.com/pspoerri/tilegrid/internal/library"
)

// EmptyTileName is the synthetic name assigned to any bitmask that matches
// no library icon.
const EmptyTileName = "empty"

// Config controls rasterisation concurrency and reporting.
type Config struct {
	BaseGrid    int
	Concurrency int
	Verbose     bool
}

// Stats summarises a rasterisation pass.
type Stats struct {
	TileCount  int64
	EmptyTiles int64
}

// rowJob is one row of tiles to classify.
type rowJob struct {
	row int
}

// Rasterize slices img into a (rows×cols) grid of tiles, classifying each
// against lib. Row classification is distributed across cfg.Concurrency
// workers pulling from a job channel, coordinated with a WaitGroup and
// atomic counters.
func Rasterize(img image.Image, lib *library.Library, cfg Config) (*TileGrid, *BitmaskGrid, Stats, error) {
	baseGrid := cfg.BaseGrid
	if baseGrid <= 0 {
		baseGrid = bitmask.DefaultBaseGrid
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if err := bitmask.ValidateDimensions(w, h, baseGrid); err != nil {
		return nil, nil, Stats{}, err
	}

	cols := w / baseGrid
	rows := h / baseGrid

	names := make([][]string, rows)
	masks := make([][]bitmask.TileBitmask, rows)
	for y := 0; y < rows; y++ {
		names[y] = make([]string, cols)
		masks[y] = make([]bitmask.TileBitmask, cols)
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	var tileCount, emptyCount atomic.Int64

	var pb *progressBar
	if cfg.Verbose {
		pb = newProgressBar("Rasterising", int64(rows))
	}

	jobs := make(chan rowJob, concurrency*2)
	var wg sync.WaitGroup

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				classifyRow(img, lib, job.row, cols, baseGrid, bounds.Min.X, bounds.Min.Y, names, masks, &tileCount, &emptyCount)
				if pb != nil {
					pb.Increment()
				}
			}
		}()
	}

	for y := 0; y < rows; y++ {
		jobs <- rowJob{row: y}
	}
	close(jobs)
	wg.Wait()
	if pb != nil {
		pb.Finish()
	}

	if cfg.Verbose {
		log.Printf("Rasterised %dx%d tiles: %d empty", cols, rows, emptyCount.Load())
	}

	return &TileGrid{Rows: rows, Cols: cols, Names: names},
		&BitmaskGrid{Rows: rows, Cols: cols, Masks: masks},
		Stats{TileCount: tileCount.Load(), EmptyTiles: emptyCount.Load()},
		nil
}

func classifyRow(img image.Image, lib *library.Library, y, cols, baseGrid, originX, originY int,
	names [][]string, masks [][]bitmask.TileBitmask, tileCount, emptyCount *atomic.Int64) {
	for x := 0; x < cols; x++ {
		px := originX + x*baseGrid
		py := originY + y*baseGrid
		bm := bitmask.Extract(img, px, py, baseGrid)
		masks[y][x] = bm
		name, ok := lib.Lookup(bm)
		if !ok {
			name = EmptyTileName
			emptyCount.Add(1)
		}
		names[y][x] = name
		tileCount.Add(1)
	}
}
