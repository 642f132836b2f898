package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/pspoerri/tilegrid/internal/library"
	"github.com/pspoerri/tilegrid/internal/raster"
)

// tiledump classifies a program image against an icon library and prints
// the resulting tile grid as text, one name per cell, for debugging.
func main() {
	var (
		libraryDir  string
		baseGrid    int
		concurrency int
	)

	flag.StringVar(&libraryDir, "library", "images", "Icon library root directory")
	flag.IntVar(&baseGrid, "base-grid", 5, "Tile side length in pixels")
	flag.IntVar(&concurrency, "concurrency", 1, "Number of parallel rasterisation workers")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tiledump [flags] <program.png>\n\n")
		fmt.Fprintf(os.Stderr, "Print the classified tile grid of a program image.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	lib, err := library.Load(libraryDir, baseGrid)
	if err != nil {
		log.Fatalf("Loading icon library: %v", err)
	}

	f, err := os.Open(args[0])
	if err != nil {
		log.Fatalf("Opening program image: %v", err)
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		log.Fatalf("Decoding program image: %v", err)
	}

	tiles, _, stats, err := raster.Rasterize(img, lib, raster.Config{
		BaseGrid:    baseGrid,
		Concurrency: concurrency,
	})
	if err != nil {
		log.Fatalf("Rasterising program: %v", err)
	}

	for y := 0; y < tiles.Rows; y++ {
		for x := 0; x < tiles.Cols; x++ {
			if x > 0 {
				fmt.Print("\t")
			}
			fmt.Print(tiles.At(x, y))
		}
		fmt.Println()
	}
	fmt.Fprintf(os.Stderr, "%d tiles, %d empty\n", stats.TileCount, stats.EmptyTiles)
}
