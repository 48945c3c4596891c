// Package poster composites celebration posters: a processed employee
// photo and text fields layered onto a template image under a
// user-editable pixel layout.
package poster

import (
	"bytes"
	"context"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/salasarservices/autogreet/internal/bgremove"
	"github.com/salasarservices/autogreet/internal/employee"
	"github.com/salasarservices/autogreet/internal/facecrop"
	"github.com/salasarservices/autogreet/internal/infra"
	"github.com/salasarservices/autogreet/internal/schedule"
)

// lineSpacing is the line-height multiplier for wrapped text.
const lineSpacing = 1.35

// BackgroundRemover strips the photo background, or reports a fallback.
type BackgroundRemover interface {
	Remove(ctx context.Context, photo []byte) bgremove.Outcome
}

// Compositor produces finished posters. It holds no per-call state, so
// one Compositor may serve concurrent generations.
type Compositor struct {
	Remover  BackgroundRemover // optional; nil skips background removal
	Detector facecrop.Detector // optional; nil forces centered crops
	Fonts    *FontStore

	// HTTPClient fetches photo URLs; nil uses a bounded default.
	HTTPClient *http.Client

	// Placeholder substitutes a drawn silhouette when the photo is
	// unavailable instead of aborting the poster.
	Placeholder bool

	// Now supplies "today" for the anniversary year count.
	Now func() time.Time

	Logger *infra.Logger
}

func (c *Compositor) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Compositor) log() infra.Logger {
	if c.Logger != nil {
		return *c.Logger
	}
	return zerolog.New(io.Discard)
}

// Compose runs the full pipeline for one employee: validate layout,
// resolve and process the photo, paste it into the photo box, render
// every text field, and return the encoded PNG. No partial poster is
// ever returned.
func (c *Compositor) Compose(ctx context.Context, emp employee.Employee, tmpl image.Image, layout Layout, cat Category) ([]byte, error) {
	tb := tmpl.Bounds()
	if err := layout.Validate(cat, tb.Dx(), tb.Dy()); err != nil {
		return nil, err
	}

	box := layout.PhotoBox
	photo, err := c.subjectPhoto(ctx, emp, box)
	if err != nil {
		return nil, err
	}

	canvas := imaging.Clone(tmpl)
	// Overlay respects the cutout's alpha: transparent pixels let the
	// template show through.
	canvas = imaging.Overlay(canvas, photo, image.Pt(box.X, box.Y), 1.0)

	dc := gg.NewContextForImage(canvas)
	for _, f := range layout.Fields {
		if err := c.drawField(dc, emp, cat, f); err != nil {
			return nil, &CompositionError{Employee: emp.Name, Category: cat, Step: "text:" + f.Name, Err: err}
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dc.Image(), imaging.PNG); err != nil {
		return nil, &CompositionError{Employee: emp.Name, Category: cat, Step: "encode", Err: err}
	}
	return buf.Bytes(), nil
}

// subjectPhoto fetches, cuts out, face-crops and scales the employee
// photo to exactly the photo box.
func (c *Compositor) subjectPhoto(ctx context.Context, emp employee.Employee, box Rect) (image.Image, error) {
	raw, err := photoBytes(ctx, c.HTTPClient, emp)
	var img image.Image
	if err == nil {
		img, err = imaging.Decode(bytes.NewReader(raw))
	}
	if err != nil {
		if !c.Placeholder {
			return nil, &PhotoUnavailableError{Employee: emp.Name, Ref: photoRef(emp), Err: err}
		}
		lg := c.log()
		lg.Warn().Str("employee", emp.Name).Err(err).Msg("poster: photo unavailable, using silhouette")
		return silhouette(box.W, box.H), nil
	}

	if c.Remover != nil {
		out := c.Remover.Remove(ctx, raw)
		if out.FellBack {
			lg := c.log()
			lg.Debug().Str("employee", emp.Name).Str("reason", out.Reason).Msg("poster: keeping original photo")
		} else {
			img = out.Image
		}
	}

	img = facecrop.CropToRatio(img, box.W, box.H, c.Detector)
	return imaging.Resize(img, box.W, box.H, imaging.Lanczos), nil
}

func (c *Compositor) drawField(dc *gg.Context, emp employee.Employee, cat Category, f TextField) error {
	value := c.fieldValue(emp, cat, f.Name)
	if value == "" {
		return nil
	}
	if c.Fonts == nil {
		return &FontError{Name: f.Font}
	}
	face, err := c.Fonts.Face(f.Font, f.Size)
	if err != nil {
		return err
	}
	col, err := ParseColor(f.Color)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetColor(col)

	lines := []string{value}
	if f.MaxWidth > 0 {
		lines = dc.WordWrap(value, float64(f.MaxWidth))
	}
	lineH := dc.FontHeight() * lineSpacing
	for i, line := range lines {
		// The anchor is the field's top-left; DrawString wants a baseline.
		dc.DrawString(line, float64(f.X), float64(f.Y)+dc.FontHeight()+float64(i)*lineH)
	}
	return nil
}

// fieldValue resolves a validated field name against the employee.
func (c *Compositor) fieldValue(emp employee.Employee, cat Category, name string) string {
	switch name {
	case FieldName:
		if cat == CategoryBirthday {
			return cases.Title(language.English).String(strings.ToLower(emp.Name))
		}
		return strings.ToUpper(emp.Name)
	case FieldDesignation:
		return emp.Designation
	case FieldVertical:
		return emp.Vertical
	case FieldDepartment:
		return emp.Department
	case FieldLocation:
		return emp.Location
	case FieldYears:
		return Ordinal(schedule.YearsCompleted(emp.DateOfJoining, c.now()))
	}
	// Validation rejects unknown names before composition starts.
	return ""
}

// silhouette draws a neutral placeholder figure sized to the photo box.
func silhouette(w, h int) image.Image {
	dc := gg.NewContext(w, h)
	dc.SetRGBA(0.62, 0.65, 0.68, 1)
	cx := float64(w) / 2
	head := float64(min(w, h)) * 0.18
	dc.DrawCircle(cx, float64(h)*0.32, head)
	dc.Fill()
	dc.DrawEllipse(cx, float64(h)*0.95, float64(w)*0.34, float64(h)*0.38)
	dc.Fill()
	return dc.Image()
}
