package api

import (
	"bytes"
	"encoding/json"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/salasarservices/autogreet/internal/config"
	"github.com/salasarservices/autogreet/internal/poster"
)

func testRouter(t *testing.T) (*gin.Engine, *Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	tmplPath := filepath.Join(dir, "birthday.png")
	if err := imaging.Save(imaging.New(1000, 1500, color.NRGBA{R: 10, G: 30, B: 60, A: 255}), tmplPath); err != nil {
		t.Fatalf("save template: %v", err)
	}
	fontPath := filepath.Join(dir, "regular.ttf")
	if err := os.WriteFile(fontPath, goregular.TTF, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}

	cfg := &config.Config{
		Fonts: map[string]string{"regular": fontPath, "bold": fontPath},
		Birthday: config.CategoryConfig{
			Template: tmplPath,
			Layout: poster.Layout{
				PhotoBox: poster.Rect{X: 100, Y: 100, W: 400, H: 500},
				Fields: []poster.TextField{
					{Name: poster.FieldName, TextSpec: poster.TextSpec{X: 550, Y: 300, Font: "bold", Size: 38}},
				},
			},
		},
	}

	srv, err := NewServer(filepath.Join(dir, "config.json"), cfg, config.Secrets{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	r := gin.New()
	RegisterRoutes(r, srv)
	return r, srv
}

func TestHealth(t *testing.T) {
	r, _ := testRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestEmployeesRejectsUnknownSourceMode(t *testing.T) {
	r, srv := testRouter(t)
	cfg, fonts := srv.snapshot()
	updated := *cfg
	updated.DataSource = config.DataSource{Mode: "zinghr_api", SampleURL: "https://example.com/employees.json"}
	srv.replace(&updated, fonts)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/employees", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGeneratePoster(t *testing.T) {
	photoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, imaging.New(800, 1000, color.NRGBA{R: 200, G: 60, B: 40, A: 255}), imaging.PNG); err != nil {
			t.Errorf("encode photo: %v", err)
		}
		w.Write(buf.Bytes())
	}))
	defer photoSrv.Close()

	r, _ := testRouter(t)
	body, _ := json.Marshal(map[string]any{
		"category": "birthday",
		"employee": map[string]any{
			"name":      "Jane Doe",
			"photo_url": photoSrv.URL + "/jane.png",
		},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/poster", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("Content-Type = %q, want image/png", ct)
	}
	img, err := imaging.Decode(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode poster: %v", err)
	}
	if img.Bounds().Dx() != 1000 || img.Bounds().Dy() != 1500 {
		t.Fatalf("poster = %dx%d, want 1000x1500", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestGeneratePosterPhotoUnavailable(t *testing.T) {
	r, _ := testRouter(t)
	body, _ := json.Marshal(map[string]any{
		"category": "birthday",
		"employee": map[string]any{"name": "Jane Doe"},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/poster", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
}

func TestValidateLayout(t *testing.T) {
	r, _ := testRouter(t)

	cases := []struct {
		box       poster.Rect
		wantValid bool
	}{
		{poster.Rect{X: 100, Y: 100, W: 400, H: 500}, true},
		{poster.Rect{X: 800, Y: 100, W: 400, H: 500}, false},
	}
	for _, tc := range cases {
		body, _ := json.Marshal(map[string]any{
			"category": "birthday",
			"layout": poster.Layout{
				PhotoBox: tc.box,
				Fields: []poster.TextField{
					{Name: poster.FieldName, TextSpec: poster.TextSpec{X: 550, Y: 300, Font: "bold", Size: 38}},
				},
			},
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/layout/validate", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		var resp struct {
			Valid      bool     `json:"valid"`
			Violations []string `json:"violations"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Valid != tc.wantValid {
			t.Fatalf("box %+v: valid = %v, want %v (%v)", tc.box, resp.Valid, tc.wantValid, resp.Violations)
		}
		if !tc.wantValid && len(resp.Violations) == 0 {
			t.Fatal("invalid layout reported no violations")
		}
	}
}

func TestPutConfigPersistsAndReloads(t *testing.T) {
	r, srv := testRouter(t)

	cfg, _ := srv.snapshot()
	updated := *cfg
	updated.Birthday.Layout.PhotoBox.X = 150

	body, _ := json.Marshal(&updated)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/config", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	now, _ := srv.snapshot()
	if now.Birthday.Layout.PhotoBox.X != 150 {
		t.Fatalf("config not swapped in, X = %d", now.Birthday.Layout.PhotoBox.X)
	}
	if _, err := config.Load(srv.ConfigPath); err != nil {
		t.Fatalf("config not persisted: %v", err)
	}
}
