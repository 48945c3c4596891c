// Package schedule decides which employees celebrate on a given date.
package schedule

import (
	"time"

	"github.com/salasarservices/autogreet/internal/employee"
)

func sameDay(d, on time.Time) bool {
	return !d.IsZero() && d.Month() == on.Month() && d.Day() == on.Day()
}

// BirthdaysOn returns the employees whose date of birth matches the
// day and month of on.
func BirthdaysOn(emps []employee.Employee, on time.Time) []employee.Employee {
	var out []employee.Employee
	for _, e := range emps {
		if sameDay(e.DateOfBirth, on) {
			out = append(out, e)
		}
	}
	return out
}

// AnniversariesOn returns the employees whose date of joining matches
// the day and month of on.
func AnniversariesOn(emps []employee.Employee, on time.Time) []employee.Employee {
	var out []employee.Employee
	for _, e := range emps {
		if sameDay(e.DateOfJoining, on) {
			out = append(out, e)
		}
	}
	return out
}

// YearsCompleted is the whole years of service as of on. The batch runs
// on the anniversary day itself, so the calendar-year difference is the
// completed count.
func YearsCompleted(doj, on time.Time) int {
	if doj.IsZero() {
		return 0
	}
	return on.Year() - doj.Year()
}
