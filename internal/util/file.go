package util

import (
	"os"
	"strings"
)

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// SafeName turns an employee name into a filename fragment.
func SafeName(name string) string {
	if name == "" {
		return "employee"
	}
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}
