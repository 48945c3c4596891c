package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/salasarservices/autogreet/internal/config"
	"github.com/salasarservices/autogreet/internal/employee"
	"github.com/salasarservices/autogreet/internal/poster"
)

func TestGenerateLogsUnknownCategory(t *testing.T) {
	flagWorkers = 1
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	jobs := []job{{emp: employee.Employee{Name: "Jane Doe"}, cat: poster.Category("farewell")}}
	out := generate(context.Background(), &poster.Compositor{}, &config.Config{}, nil, jobs, time.Now(), logger)
	if len(out) != 0 {
		t.Fatalf("results = %+v, want none", out)
	}
	if !strings.Contains(buf.String(), "unknown category") {
		t.Fatalf("log output %q does not report the skipped job", buf.String())
	}
	if !strings.Contains(buf.String(), "farewell") {
		t.Fatalf("log output %q does not name the category", buf.String())
	}
}
