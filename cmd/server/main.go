package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/salasarservices/autogreet/internal/api"
	"github.com/salasarservices/autogreet/internal/bgremove"
	"github.com/salasarservices/autogreet/internal/config"
	"github.com/salasarservices/autogreet/internal/facecrop"
	"github.com/salasarservices/autogreet/internal/infra"
	"github.com/salasarservices/autogreet/internal/util"
)

func main() {
	_ = godotenv.Load(".env", ".env.local")
	logger := infra.NewLogger(getenv("APP_ENV", "development"))

	cfgPath := getenv("AUTOGREET_CONFIG", "template_config.json")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("server: config load failed")
	}
	secrets, err := config.LoadSecrets(getenv("AUTOGREET_SECRETS", "secrets.toml"))
	if err != nil {
		logger.Fatal().Err(err).Msg("server: secrets load failed")
	}

	srv, err := api.NewServer(cfgPath, cfg, secrets, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("server: font load failed")
	}
	srv.HTTPClient = util.DefaultClient
	srv.Remover = bgremove.New(bgremove.Options{
		APIKey: secrets.WithoutBGAPIKey,
		Logger: &logger,
	})

	// Face detection is best-effort at startup: without a cascade the
	// cropper still works with centered crops.
	if cfg.CascadeFile != "" {
		det, err := facecrop.LoadPigoDetector(cfg.CascadeFile)
		if err != nil {
			logger.Warn().Err(err).Msg("server: face cascade unavailable, crops will be centered")
		} else {
			srv.Detector = det
		}
	}

	r := gin.Default()
	api.RegisterRoutes(r, srv)

	port := getenv("PORT", "8080")
	logger.Info().Str("port", port).Msg("server: listening")
	if err := r.Run(":" + port); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server: exited")
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
