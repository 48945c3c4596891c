// Package facecrop crops photos to a target aspect ratio around the
// principal face, falling back to a centered crop when no face is found.
package facecrop

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Face is a detected face bounding box in image pixel coordinates.
type Face struct {
	X, Y, W, H int
}

func (f Face) Area() int { return f.W * f.H }

func (f Face) Center() (int, int) { return f.X + f.W/2, f.Y + f.H/2 }

// Detector finds faces in an image. Implementations must not panic for
// valid images; an error is treated by callers as "no face found".
type Detector interface {
	Detect(img image.Image) ([]Face, error)
}

// Principal returns the face with the largest bounding area.
func Principal(faces []Face) (Face, bool) {
	if len(faces) == 0 {
		return Face{}, false
	}
	best := faces[0]
	for _, f := range faces[1:] {
		if f.Area() > best.Area() {
			best = f
		}
	}
	return best, true
}

// CropToRatio crops img to the ratioW:ratioH aspect ratio. The crop
// rectangle is the largest exact multiple of the reduced ratio that fits
// the image, centered on the principal face (or the image center when
// det is nil, fails, or finds nothing) and clamped inside the bounds.
// An image smaller than one unit of the reduced ratio gets the largest
// in-bounds crop of the ratio rounded to whole pixels. An image whose
// native ratio already matches within 1% is returned unchanged. Source
// pixels are never upscaled here.
func CropToRatio(img image.Image, ratioW, ratioH int, det Detector) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 || ratioW <= 0 || ratioH <= 0 {
		return img
	}

	g := gcd(ratioW, ratioH)
	rw, rh := ratioW/g, ratioH/g

	// Identity when the native ratio is already close enough; recropping
	// would only cost quality.
	diff := w*rh - h*rw
	if diff < 0 {
		diff = -diff
	}
	if 100*diff <= h*rw {
		return img
	}

	n := min(w/rw, h/rh)
	cw, ch := n*rw, n*rh
	if n < 1 {
		// The image holds no whole unit of the reduced ratio, so an
		// exact-multiple crop is impossible. Take the largest in-bounds
		// cover of the ratio and round to whole pixels.
		cw, ch = w, int(math.Round(float64(w)*float64(rh)/float64(rw)))
		if ch > h {
			cw, ch = int(math.Round(float64(h)*float64(rw)/float64(rh))), h
		}
		if cw < 1 || ch < 1 {
			return img
		}
	}

	cx, cy := w/2, h/2
	if det != nil {
		if faces, err := det.Detect(img); err == nil {
			if f, ok := Principal(faces); ok {
				cx, cy = f.Center()
			}
		}
	}

	left := clamp(cx-cw/2, 0, w-cw)
	top := clamp(cy-ch/2, 0, h-ch)
	rect := image.Rect(b.Min.X+left, b.Min.Y+top, b.Min.X+left+cw, b.Min.Y+top+ch)
	return imaging.Crop(img, rect)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
