package poster

import (
	"errors"
	"image/color"
	"strings"
	"testing"
)

func validLayout() Layout {
	return Layout{
		PhotoBox: Rect{X: 100, Y: 100, W: 400, H: 500},
		Fields: []TextField{
			{Name: FieldName, TextSpec: TextSpec{X: 550, Y: 300, Font: "bold", Size: 38}},
			{Name: FieldDesignation, TextSpec: TextSpec{X: 550, Y: 360, Font: "regular", Size: 26, Color: "#ffcc00"}},
		},
	}
}

func TestValidateAcceptsInBoundsLayout(t *testing.T) {
	if err := validLayout().Validate(CategoryBirthday, 1000, 1500); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateRejectsPhotoBoxOutOfBounds(t *testing.T) {
	l := validLayout()
	l.PhotoBox = Rect{X: 800, Y: 100, W: 400, H: 500}
	err := l.Validate(CategoryBirthday, 1000, 1500)
	var layoutErr *LayoutError
	if !errors.As(err, &layoutErr) {
		t.Fatalf("Validate() = %v, want *LayoutError", err)
	}
	if len(layoutErr.Violations) != 1 {
		t.Fatalf("violations = %v, want exactly one", layoutErr.Violations)
	}
	if !strings.Contains(layoutErr.Violations[0], "photo box") {
		t.Fatalf("violation %q does not name the photo box", layoutErr.Violations[0])
	}
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	l := Layout{
		PhotoBox: Rect{X: -10, Y: 0, W: 400, H: 500},
		Fields: []TextField{
			{Name: "salary", TextSpec: TextSpec{X: 550, Y: 300, Font: "bold", Size: 38}},
			{Name: FieldName, TextSpec: TextSpec{X: 5000, Y: 300, Font: "", Size: 0}},
		},
	}
	err := l.Validate(CategoryBirthday, 1000, 1500)
	var layoutErr *LayoutError
	if !errors.As(err, &layoutErr) {
		t.Fatalf("Validate() = %v, want *LayoutError", err)
	}
	// unknown field, anchor out of bounds, zero size, missing font, bad box
	if len(layoutErr.Violations) < 5 {
		t.Fatalf("violations = %v, want all five collected", layoutErr.Violations)
	}
}

func TestValidateRejectsYearsOnBirthday(t *testing.T) {
	l := validLayout()
	l.Fields = append(l.Fields, TextField{Name: FieldYears, TextSpec: TextSpec{X: 80, Y: 80, Font: "year", Size: 64}})

	if err := l.Validate(CategoryAnniversary, 1000, 1500); err != nil {
		t.Fatalf("anniversary layout with years field rejected: %v", err)
	}
	err := l.Validate(CategoryBirthday, 1000, 1500)
	var layoutErr *LayoutError
	if !errors.As(err, &layoutErr) {
		t.Fatalf("Validate() = %v, want *LayoutError", err)
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"", color.NRGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"#ffffff", color.NRGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"#FFCC00", color.NRGBA{0xff, 0xcc, 0x00, 0xff}, false},
		{"#abc", color.NRGBA{0xaa, 0xbb, 0xcc, 0xff}, false},
		{"#12345", color.NRGBA{}, true},
		{"#gghhii", color.NRGBA{}, true},
		{"red", color.NRGBA{}, true},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q) error = nil, want error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q) error = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
