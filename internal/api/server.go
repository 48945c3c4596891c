package api

import (
	"net/http"
	"sync"

	"github.com/salasarservices/autogreet/internal/config"
	"github.com/salasarservices/autogreet/internal/facecrop"
	"github.com/salasarservices/autogreet/internal/infra"
	"github.com/salasarservices/autogreet/internal/poster"
)

// Server carries the shared, read-mostly state behind the HTTP API.
// Config updates go through the mutex; composition itself is stateless.
type Server struct {
	ConfigPath string
	Secrets    config.Secrets
	Logger     infra.Logger

	// Remover and Detector are shared by every composition. Either may
	// be nil (no background removal / centered crops only).
	Remover  poster.BackgroundRemover
	Detector facecrop.Detector

	// HTTPClient fetches employee records and photos.
	HTTPClient *http.Client

	mu    sync.RWMutex
	cfg   *config.Config
	fonts *poster.FontStore
}

// NewServer loads fonts for the given config and returns a ready server.
func NewServer(cfgPath string, cfg *config.Config, secrets config.Secrets, logger infra.Logger) (*Server, error) {
	fonts, err := cfg.LoadFonts()
	if err != nil {
		return nil, err
	}
	return &Server{
		ConfigPath: cfgPath,
		Secrets:    secrets,
		Logger:     logger,
		cfg:        cfg,
		fonts:      fonts,
	}, nil
}

func (s *Server) snapshot() (*config.Config, *poster.FontStore) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg, s.fonts
}

func (s *Server) replace(cfg *config.Config, fonts *poster.FontStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.fonts = fonts
}

func (s *Server) compositor(fonts *poster.FontStore) *poster.Compositor {
	return &poster.Compositor{
		Remover:    s.Remover,
		Detector:   s.Detector,
		Fonts:      fonts,
		HTTPClient: s.HTTPClient,
		Logger:     &s.Logger,
	}
}
