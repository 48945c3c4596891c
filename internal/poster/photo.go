package poster

import (
	"context"
	"fmt"
	"net/http"

	"github.com/salasarservices/autogreet/internal/employee"
	"github.com/salasarservices/autogreet/internal/util"
)

// photoBytes resolves the employee's photo source reference. Inline
// bytes win over the URL; both missing is an error.
func photoBytes(ctx context.Context, client *http.Client, emp employee.Employee) ([]byte, error) {
	if len(emp.PhotoData) > 0 {
		return emp.PhotoData, nil
	}
	if emp.PhotoURL == "" {
		return nil, fmt.Errorf("no photo reference")
	}
	return util.GetBytes(ctx, client, emp.PhotoURL)
}

func photoRef(emp employee.Employee) string {
	if len(emp.PhotoData) > 0 {
		return "inline bytes"
	}
	if emp.PhotoURL != "" {
		return emp.PhotoURL
	}
	return "none"
}
