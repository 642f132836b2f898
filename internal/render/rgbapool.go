package render

import "image"

// getScratchRGBA allocates a zeroed *image.RGBA to paint one entry tile's
// result into. Render walks at most a handful of functions/entry tiles per
// program, so this is a plain allocation rather than a pool: there is no hot
// loop here to amortize against.
func getScratchRGBA(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// putScratchRGBA is a no-op kept so callers can still pair every
// getScratchRGBA with a release call; the garbage collector reclaims the
// image once it falls out of scope.
func putScratchRGBA(img *image.RGBA) {}
