package employee

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"15-03-1990", time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC), false},
		{"1990-03-15", time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC), false},
		{"15/03/1990", time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC), false},
		{"", time.Time{}, true},
		{"yesterday", time.Time{}, true},
		{"31-02-2020", time.Time{}, true},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDate(%q) error = nil, want error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q) error = %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMapUsesFieldMapping(t *testing.T) {
	raw := map[string]any{
		"emp_name":  "Jane Doe",
		"title":     "Staff Engineer",
		"unit":      "Platform",
		"dept":      "Engineering",
		"city":      "Pune",
		"born":      "15-03-1990",
		"joined":    "01-09-2018",
		"photo":     "https://example.com/jane.jpg",
		"badge_num": 42,
	}
	mapping := FieldMapping{
		"name": "emp_name", "designation": "title", "vertical": "unit",
		"department": "dept", "location": "city", "dob": "born",
		"doj": "joined", "photo_url": "photo",
	}
	emp := Map(raw, mapping)
	if emp.Name != "Jane Doe" || emp.Designation != "Staff Engineer" {
		t.Fatalf("mapped employee = %+v", emp)
	}
	if emp.DateOfBirth.Month() != time.March || emp.DateOfJoining.Year() != 2018 {
		t.Fatalf("mapped dates = %v / %v", emp.DateOfBirth, emp.DateOfJoining)
	}
	if emp.PhotoURL != "https://example.com/jane.jpg" {
		t.Fatalf("PhotoURL = %q", emp.PhotoURL)
	}
}

func TestMapDefaultsAndBadDates(t *testing.T) {
	raw := map[string]any{
		"EmployeeName": "Ravi Kumar",
		"DateOfBirth":  "not a date",
	}
	emp := Map(raw, nil)
	if emp.Name != "Ravi Kumar" {
		t.Fatalf("Name = %q, want default-mapped name", emp.Name)
	}
	if !emp.DateOfBirth.IsZero() {
		t.Fatalf("DateOfBirth = %v, want zero for unparseable input", emp.DateOfBirth)
	}
}
