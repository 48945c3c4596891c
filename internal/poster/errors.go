package poster

import "fmt"

// PhotoUnavailableError means the employee photo could not be fetched or
// decoded. The caller decides whether to skip the employee or abort the
// batch.
type PhotoUnavailableError struct {
	Employee string
	Ref      string
	Err      error
}

func (e *PhotoUnavailableError) Error() string {
	return fmt.Sprintf("photo for %s unavailable (%s): %v", e.Employee, e.Ref, e.Err)
}

func (e *PhotoUnavailableError) Unwrap() error { return e.Err }

// FontError means a layout referenced a font name that is not
// registered. A missing font is never substituted silently.
type FontError struct {
	Name string
}

func (e *FontError) Error() string {
	return fmt.Sprintf("font %q is not registered", e.Name)
}

// CompositionError wraps any failure between layout validation and the
// encoded poster, identifying the employee and the failing step so a
// batch caller can skip and continue.
type CompositionError struct {
	Employee string
	Category Category
	Step     string
	Err      error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("compose %s poster for %s: %s: %v", e.Category, e.Employee, e.Step, e.Err)
}

func (e *CompositionError) Unwrap() error { return e.Err }
