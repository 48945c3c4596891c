// Package config loads the poster configuration file and the secrets
// file that accompany a deployment.
package config

import (
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"os"

	"github.com/disintegration/imaging"

	"github.com/salasarservices/autogreet/internal/employee"
	"github.com/salasarservices/autogreet/internal/poster"
)

// DataSource selects where employee records come from.
type DataSource struct {
	Mode      string `json:"mode"` // "sample_json"
	SampleURL string `json:"sample_url"`
}

// EmployeeSource builds the record source for the configured mode. An
// unconfigured mode means sample_json; anything else is rejected here
// rather than silently served from the sample URL.
func (d DataSource) EmployeeSource(mapping employee.FieldMapping, client *http.Client) (*employee.Source, error) {
	switch d.Mode {
	case "", "sample_json":
		return &employee.Source{URL: d.SampleURL, Mapping: mapping, HTTPClient: client}, nil
	}
	return nil, fmt.Errorf("config: unknown data source mode %q", d.Mode)
}

// Recipients is the mailing list for one poster category.
type Recipients struct {
	To []string `json:"to"`
	CC []string `json:"cc"`
}

// CategoryConfig ties a template image to its layout.
type CategoryConfig struct {
	Template string        `json:"template"`
	Layout   poster.Layout `json:"layout"`
}

// Config is the persisted poster configuration.
type Config struct {
	DataSource   DataSource            `json:"data_source"`
	FieldMapping employee.FieldMapping `json:"field_mapping"`
	Fonts        map[string]string     `json:"fonts"` // logical name -> file path
	CascadeFile  string                `json:"cascade_file,omitempty"`
	Birthday     CategoryConfig        `json:"birthday"`
	Anniversary  CategoryConfig        `json:"anniversary"`
	Recipients   map[string]Recipients `json:"recipients"`
}

// Load reads and decodes a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config back with stable indentation so manual edits
// stay reviewable.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Category returns the per-category configuration.
func (c *Config) Category(cat poster.Category) (CategoryConfig, error) {
	switch cat {
	case poster.CategoryBirthday:
		return c.Birthday, nil
	case poster.CategoryAnniversary:
		return c.Anniversary, nil
	}
	return CategoryConfig{}, fmt.Errorf("config: unknown category %q", cat)
}

// LoadFonts parses every configured font file into a store.
func (c *Config) LoadFonts() (*poster.FontStore, error) {
	store := poster.NewFontStore()
	for name, path := range c.Fonts {
		if err := store.AddFile(name, path); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	return store, nil
}

// LoadTemplate decodes the template image for a category.
func LoadTemplate(cc CategoryConfig) (image.Image, error) {
	if cc.Template == "" {
		return nil, fmt.Errorf("config: template path is not configured")
	}
	img, err := imaging.Open(cc.Template)
	if err != nil {
		return nil, fmt.Errorf("config: open template %s: %w", cc.Template, err)
	}
	return img, nil
}
