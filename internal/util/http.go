package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultClient bounds every outbound fetch so one dead endpoint cannot
// stall a whole batch run.
var DefaultClient = &http.Client{Timeout: 12 * time.Second}

// GetBytes downloads url and returns the raw response body.
func GetBytes(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
