package employee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/salasarservices/autogreet/internal/util"
)

// Source fetches employee records from a JSON endpoint. The endpoint
// may return a single object or an array of objects.
type Source struct {
	URL        string
	Mapping    FieldMapping
	HTTPClient *http.Client
}

// Employees downloads and normalizes all records.
func (s *Source) Employees(ctx context.Context) ([]Employee, error) {
	if s.URL == "" {
		return nil, fmt.Errorf("employee: data source url is not configured")
	}
	body, err := util.GetBytes(ctx, s.HTTPClient, s.URL)
	if err != nil {
		return nil, fmt.Errorf("employee: fetch records: %w", err)
	}

	raws, err := decodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("employee: %w", err)
	}

	mapping := s.Mapping
	if mapping == nil {
		mapping = DefaultMapping()
	}
	out := make([]Employee, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Map(raw, mapping))
	}
	return out, nil
}

func decodeRecords(body []byte) ([]map[string]any, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	switch trimmed[0] {
	case '[':
		var raws []map[string]any
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, fmt.Errorf("decode record array: %w", err)
		}
		return raws, nil
	case '{':
		var raw map[string]any
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		return []map[string]any{raw}, nil
	}
	return nil, fmt.Errorf("unexpected JSON structure")
}
