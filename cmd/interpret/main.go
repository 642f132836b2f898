package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/pspoerri/tilegrid/internal/encode"
	"github.com/pspoerri/tilegrid/internal/eval"
	"github.com/pspoerri/tilegrid/internal/library"
	"github.com/pspoerri/tilegrid/internal/raster"
	"github.com/pspoerri/tilegrid/internal/render"
)

// Set via -ldflags at build time.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	var (
		libraryDir  string
		baseGrid    int
		concurrency int
		maxSteps    int64
		verbose     bool
		showVersion bool
	)

	flag.StringVar(&libraryDir, "library", "images", "Icon library root directory")
	flag.IntVar(&baseGrid, "base-grid", 5, "Tile side length in pixels")
	flag.IntVar(&concurrency, "concurrency", runtime.NumCPU(), "Number of parallel rasterisation workers")
	flag.Int64Var(&maxSteps, "max-steps", 2_000_000, "Evaluator reduction-step budget (0 disables the limit)")
	flag.BoolVar(&verbose, "verbose", false, "Print progress and per-entry trace messages to stderr")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: interpret [flags] [program.png] [output.png]\n\n")
		fmt.Fprintf(os.Stderr, "Run a tile-grid program image and write its rendered output.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("interpret %s (commit %s, built %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	programPath := "programs/sierpinski.png"
	outputPath := "output.png"
	args := flag.Args()
	if len(args) >= 1 {
		programPath = args[0]
	}
	if len(args) >= 2 {
		outputPath = args[1]
	}

	start := time.Now()

	lib, err := library.Load(libraryDir, baseGrid)
	if err != nil {
		log.Fatalf("Loading icon library: %v", err)
	}
	if verbose {
		log.Printf("Loaded icon library from %s", libraryDir)
	}

	srcImg, err := loadImage(programPath)
	if err != nil {
		log.Fatalf("Loading program image: %v", err)
	}

	tiles, masks, stats, err := raster.Rasterize(srcImg, lib, raster.Config{
		BaseGrid:    baseGrid,
		Concurrency: concurrency,
		Verbose:     verbose,
	})
	if err != nil {
		log.Fatalf("Rasterising program: %v", err)
	}
	if verbose {
		log.Printf("Classified %d tiles (%d empty)", stats.TileCount, stats.EmptyTiles)
	}

	ev := eval.NewEvaluator(tiles, masks, baseGrid, eval.Dims{Rows: tiles.Rows, Cols: tiles.Cols}, maxSteps)
	env := ev.BuildLabelEnvironment()

	out := copyToRGBA(srcImg)
	render.Render(ev, tiles, tiles.Rows, tiles.Cols, lib, env, baseGrid, out, verbose)

	enc, err := encode.NewEncoder(outputFormat(outputPath), 85)
	if err != nil {
		log.Fatalf("Selecting output encoder: %v", err)
	}
	data, err := enc.Encode(out)
	if err != nil {
		log.Fatalf("Encoding output: %v", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		log.Fatalf("Writing output: %v", err)
	}

	if verbose {
		log.Printf("Wrote %s in %v", outputPath, time.Since(start).Round(time.Millisecond))
	}
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func copyToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)
	return out
}

func outputFormat(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			switch path[i+1:] {
			case "jpg", "jpeg":
				return "jpeg"
			case "webp":
				return "webp"
			default:
				return "png"
			}
		}
	}
	return "png"
}
