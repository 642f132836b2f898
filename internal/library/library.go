// Package library loads the tile icon library: a directory tree of
// base_grid×base_grid PNG icons, named by their path relative to the root
// (subfolders become part of the name, e.g. "functions/add"). The loader
// walks the tree with filepath.Walk, skipping and warning on anything
// malformed rather than aborting the load.
package library

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pspoerri/tilegrid/internal/bitmask"
)

// Library is a lookup table from tile bitmask to tile name.
type Library struct {
	baseGrid int
	byKey    map[string]string
	icons    map[string]bitmask.TileBitmask // name -> bitmask, used by the renderer to blit digits
}

// BaseGrid returns the tile side length this library was loaded for.
func (l *Library) BaseGrid() int { return l.baseGrid }

// Lookup returns the tile name matching bm, or ("", false) if no icon
// matches (the caller resolves that to the synthetic "empty" tile name).
func (l *Library) Lookup(bm bitmask.TileBitmask) (string, bool) {
	name, ok := l.byKey[bm.Key()]
	return name, ok
}

// Icon returns the bitmask registered under name, used by the entry-point
// renderer to blit digit/dot/minus glyphs.
func (l *Library) Icon(name string) (bitmask.TileBitmask, bool) {
	bm, ok := l.icons[name]
	return bm, ok
}

// Load recursively enumerates PNG files beneath root, verifying each is
// exactly baseGrid×baseGrid. Mis-sized icons are skipped with a warning,
// never aborting the load.
func Load(root string, baseGrid int) (*Library, error) {
	if baseGrid <= 0 {
		baseGrid = bitmask.DefaultBaseGrid
	}
	lib := &Library{
		baseGrid: baseGrid,
		byKey:    make(map[string]string),
		icons:    make(map[string]bitmask.TileBitmask),
	}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".png") {
			return nil
		}
		img, decodeErr := decodePNG(path)
		if decodeErr != nil {
			log.Printf("Error: could not decode %s: %v", path, decodeErr)
			return nil
		}
		bounds := img.Bounds()
		if bounds.Dx() != baseGrid || bounds.Dy() != baseGrid {
			log.Printf("Error: image %s is not %dx%d", path, baseGrid, baseGrid)
			return nil
		}
		name := tileName(root, path)
		bm := bitmask.Extract(img, bounds.Min.X, bounds.Min.Y, baseGrid)
		lib.byKey[bm.Key()] = name
		lib.icons[name] = bm
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading library %s: %w", root, err)
	}
	return lib, nil
}

// tileName derives the library tile name from a PNG path: strip the root
// prefix and the .png suffix, keep subfolder components with forward
// slashes.
func tileName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = strings.TrimPrefix(path, root+string(filepath.Separator))
	}
	rel = filepath.ToSlash(rel)
	return strings.TrimSuffix(rel, ".png")
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
