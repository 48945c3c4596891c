// Package bgremove calls a background-removal HTTP service and falls
// back to the original photo on any failure. Background removal is a
// cosmetic enhancement; it must never block poster generation.
package bgremove

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"github.com/salasarservices/autogreet/internal/infra"
)

const defaultBaseURL = "https://api.withoutbg.com/v1.0"

// Options configures the withoutbg client.
type Options struct {
	APIKey         string
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Logger         *infra.Logger
}

// Client performs a single, time-bounded call per photo. Retry policy
// belongs to the batch caller, not here.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     infra.Logger
}

// Outcome is the tagged result of one removal attempt. When FellBack is
// true, Image is nil and the caller keeps its original photo; Reason
// says why.
type Outcome struct {
	Image    image.Image
	FellBack bool
	Reason   string
}

// New constructs a client with sane defaults.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	logger := zerolog.New(io.Discard)
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// Remove sends the photo to the service and returns the decoded cutout.
// Every failure mode (missing credential, transport error, non-2xx,
// undecodable body) is absorbed into a fallback Outcome.
func (c *Client) Remove(ctx context.Context, photo []byte) Outcome {
	if !c.HasCredentials() {
		return c.fallback("api key not configured", nil)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "photo.png")
	if err == nil {
		_, err = fw.Write(photo)
	}
	if err == nil {
		err = mw.Close()
	}
	if err != nil {
		return c.fallback("encode request", err)
	}

	endpoint := c.baseURL + "/image-without-background"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return c.fallback("build request", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fallback("http request", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fallback("read response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fallback(fmt.Sprintf("status %d", resp.StatusCode), nil)
	}

	cutout, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return c.fallback("decode response", err)
	}

	c.logger.Debug().Int("bytes", len(raw)).Msg("bgremove: background removed")
	return Outcome{Image: cutout}
}

func (c *Client) fallback(reason string, err error) Outcome {
	if err != nil {
		reason = fmt.Sprintf("%s: %v", reason, err)
	}
	c.logger.Warn().Str("reason", reason).Msg("bgremove: falling back to original photo")
	return Outcome{FellBack: true, Reason: reason}
}
