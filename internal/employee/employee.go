// Package employee models the poster subject and the sample-JSON data
// source that supplies today's records.
package employee

import (
	"fmt"
	"time"
)

// Employee is the immutable input to one poster-generation request.
// PhotoData, when set, takes precedence over PhotoURL.
type Employee struct {
	Name          string    `json:"name"`
	Designation   string    `json:"designation"`
	Vertical      string    `json:"vertical"`
	Department    string    `json:"department"`
	Location      string    `json:"location"`
	DateOfBirth   time.Time `json:"dob"`
	DateOfJoining time.Time `json:"doj"`
	PhotoURL      string    `json:"photo_url"`
	PhotoData     []byte    `json:"-"`
}

// FieldMapping maps canonical field names to the keys a data source
// actually returns.
type FieldMapping map[string]string

// DefaultMapping matches the ZingHR-style export the sample feed uses.
func DefaultMapping() FieldMapping {
	return FieldMapping{
		"name":        "EmployeeName",
		"designation": "Designation",
		"vertical":    "Vertical",
		"department":  "Department",
		"location":    "Location",
		"dob":         "DateOfBirth",
		"doj":         "DateOfJoining",
		"photo_url":   "EmployeeImage",
	}
}

var dateFormats = []string{"02-01-2006", "2006-01-02", "02/01/2006"}

// ParseDate parses a DD-MM-YYYY date, with ISO and slash fallbacks.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// Map normalizes a raw record using the field mapping. Missing keys map
// to zero values; dates that fail to parse stay zero rather than
// failing the whole record.
func Map(raw map[string]any, mapping FieldMapping) Employee {
	str := func(canonical string) string {
		key, ok := mapping[canonical]
		if !ok {
			key = DefaultMapping()[canonical]
		}
		switch v := raw[key].(type) {
		case string:
			return v
		case nil:
			return ""
		default:
			return fmt.Sprint(v)
		}
	}

	emp := Employee{
		Name:        str("name"),
		Designation: str("designation"),
		Vertical:    str("vertical"),
		Department:  str("department"),
		Location:    str("location"),
		PhotoURL:    str("photo_url"),
	}
	if t, err := ParseDate(str("dob")); err == nil {
		emp.DateOfBirth = t
	}
	if t, err := ParseDate(str("doj")); err == nil {
		emp.DateOfJoining = t
	}
	return emp
}
