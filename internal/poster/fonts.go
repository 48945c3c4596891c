package poster

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// FontStore holds parsed fonts by logical name (e.g. "regular", "bold",
// "year") and derives faces per point size at render time.
type FontStore struct {
	fonts map[string]*truetype.Font
}

func NewFontStore() *FontStore {
	return &FontStore{fonts: make(map[string]*truetype.Font)}
}

// Add parses TTF/OTF bytes and registers them under name.
func (s *FontStore) Add(name string, data []byte) error {
	f, err := truetype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", name, err)
	}
	s.fonts[name] = f
	return nil
}

// AddFile registers the font file at path under name.
func (s *FontStore) AddFile(name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %q: %w", name, err)
	}
	return s.Add(name, data)
}

// Names returns the registered logical names.
func (s *FontStore) Names() []string {
	out := make([]string, 0, len(s.fonts))
	for n := range s.fonts {
		out = append(out, n)
	}
	return out
}

// Face returns a face for the named font at the given point size. A
// missing name is a *FontError; there is no fallback font.
func (s *FontStore) Face(name string, size float64) (font.Face, error) {
	f, ok := s.fonts[name]
	if !ok {
		return nil, &FontError{Name: name}
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
