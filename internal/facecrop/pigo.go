package facecrop

import (
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"
)

// minQuality filters out low-confidence pigo detections.
const minQuality = 5.0

// PigoDetector runs the pigo cascade classifier. Safe for concurrent
// use; the classifier is read-only after Unpack.
type PigoDetector struct {
	classifier *pigo.Pigo
}

// NewPigoDetector unpacks a binary facefinder cascade.
func NewPigoDetector(cascade []byte) (*PigoDetector, error) {
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("facecrop: unpack cascade: %w", err)
	}
	return &PigoDetector{classifier: classifier}, nil
}

// LoadPigoDetector reads a facefinder cascade file from disk.
func LoadPigoDetector(path string) (*PigoDetector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("facecrop: read cascade %s: %w", path, err)
	}
	return NewPigoDetector(data)
}

func (d *PigoDetector) Detect(img image.Image) ([]Face, error) {
	src := pigo.ImgToNRGBA(img)
	cols := src.Bounds().Dx()
	rows := src.Bounds().Dy()
	if cols == 0 || rows == 0 {
		return nil, nil
	}
	pixels := pigo.RgbToGrayscale(src)

	params := pigo.CascadeParams{
		MinSize:     20,
		MaxSize:     max(cols, rows),
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := d.classifier.RunCascade(params, 0.0)
	dets = d.classifier.ClusterDetections(dets, 0.2)

	var faces []Face
	for _, det := range dets {
		if det.Q < minQuality {
			continue
		}
		faces = append(faces, Face{
			X: det.Col - det.Scale/2,
			Y: det.Row - det.Scale/2,
			W: det.Scale,
			H: det.Scale,
		})
	}
	return faces, nil
}
