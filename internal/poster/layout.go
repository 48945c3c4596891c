package poster

import (
	"fmt"
	"image/color"
	"strings"
)

// Category selects the poster template and the set of text fields a
// layout may reference.
type Category string

const (
	CategoryBirthday    Category = "birthday"
	CategoryAnniversary Category = "anniversary"
)

// Field names a layout may bind text to. Anniversary layouts may
// additionally bind FieldYears, the computed ordinal year label.
const (
	FieldName        = "name"
	FieldDesignation = "designation"
	FieldVertical    = "vertical"
	FieldDepartment  = "department"
	FieldLocation    = "location"
	FieldYears       = "years"
)

var knownFields = map[Category]map[string]bool{
	CategoryBirthday: {
		FieldName: true, FieldDesignation: true, FieldVertical: true,
		FieldDepartment: true, FieldLocation: true,
	},
	CategoryAnniversary: {
		FieldName: true, FieldDesignation: true, FieldVertical: true,
		FieldDepartment: true, FieldLocation: true, FieldYears: true,
	},
}

// Rect is a pixel rectangle on a template.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Within reports whether the rectangle has positive size and lies fully
// inside a w*h template.
func (r Rect) Within(w, h int) bool {
	return r.X >= 0 && r.Y >= 0 && r.W > 0 && r.H > 0 && r.X+r.W <= w && r.Y+r.H <= h
}

// TextSpec positions one rendered text field.
type TextSpec struct {
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Font     string  `json:"font"`
	Size     float64 `json:"size"`
	Color    string  `json:"color,omitempty"`     // #rrggbb, white when empty
	MaxWidth int     `json:"max_width,omitempty"` // wrap width in px, 0 = no wrapping
}

// TextField binds a TextSpec to a named employee field.
type TextField struct {
	Name string `json:"name"`
	TextSpec
}

// Layout is the user-editable pixel layout for one poster category.
type Layout struct {
	PhotoBox Rect        `json:"photo_box"`
	Fields   []TextField `json:"fields"`
}

// LayoutError reports every constraint a layout violates for a template.
type LayoutError struct {
	Category   Category
	Violations []string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("invalid %s layout: %s", e.Category, strings.Join(e.Violations, "; "))
}

// Validate checks the layout against the template's pixel dimensions.
// All violations are collected; composition must not proceed when an
// error is returned.
func (l Layout) Validate(cat Category, tmplW, tmplH int) error {
	known, ok := knownFields[cat]
	var violations []string
	if !ok {
		violations = append(violations, fmt.Sprintf("unknown category %q", cat))
	}
	if !l.PhotoBox.Within(tmplW, tmplH) {
		violations = append(violations, fmt.Sprintf(
			"photo box %dx%d at (%d,%d) outside template bounds %dx%d",
			l.PhotoBox.W, l.PhotoBox.H, l.PhotoBox.X, l.PhotoBox.Y, tmplW, tmplH))
	}
	for _, f := range l.Fields {
		if known != nil && !known[f.Name] {
			violations = append(violations, fmt.Sprintf("field %q is not a %s field", f.Name, cat))
		}
		if f.X < 0 || f.Y < 0 || f.X >= tmplW || f.Y >= tmplH {
			violations = append(violations, fmt.Sprintf(
				"field %q anchor (%d,%d) outside template bounds %dx%d",
				f.Name, f.X, f.Y, tmplW, tmplH))
		}
		if f.Size <= 0 {
			violations = append(violations, fmt.Sprintf("field %q has non-positive size %g", f.Name, f.Size))
		}
		if f.Font == "" {
			violations = append(violations, fmt.Sprintf("field %q has no font", f.Name))
		}
		if _, err := ParseColor(f.Color); err != nil {
			violations = append(violations, fmt.Sprintf("field %q: %v", f.Name, err))
		}
	}
	if len(violations) > 0 {
		return &LayoutError{Category: cat, Violations: violations}
	}
	return nil
}

// ParseColor parses a #rgb or #rrggbb hex color. The empty string is
// white, matching the original template text fill.
func ParseColor(s string) (color.NRGBA, error) {
	if s == "" {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("color %q must start with '#'", s)
	}
	hex := s[1:]
	nib := func(c byte) (uint8, bool) {
		switch {
		case c >= '0' && c <= '9':
			return c - '0', true
		case c >= 'a' && c <= 'f':
			return c - 'a' + 10, true
		case c >= 'A' && c <= 'F':
			return c - 'A' + 10, true
		}
		return 0, false
	}
	byteAt := func(i, j int) (uint8, bool) {
		hi, ok1 := nib(hex[i])
		lo, ok2 := nib(hex[j])
		return hi<<4 | lo, ok1 && ok2
	}
	switch len(hex) {
	case 3:
		r, ok1 := byteAt(0, 0)
		g, ok2 := byteAt(1, 1)
		b, ok3 := byteAt(2, 2)
		if ok1 && ok2 && ok3 {
			return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
		}
	case 6:
		r, ok1 := byteAt(0, 1)
		g, ok2 := byteAt(2, 3)
		b, ok3 := byteAt(4, 5)
		if ok1 && ok2 && ok3 {
			return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
		}
	}
	return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
}
