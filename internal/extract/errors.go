package extract

import (
	"errors"
	"fmt"
)

// ErrNoData signals that neither structured data, heuristics, nor the AI
// fallback produced a usable recipe. Callers treat it as "no recipe found
// on this page".
var ErrNoData = errors.New("no recipe found on this page")

// FetchError reports that a page could not be retrieved. Fatal for the
// source page; recoverable for images.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractionError reports that the model's response could not be coerced
// into valid JSON even after repair. Raw and Repaired are kept for
// diagnosis.
type ExtractionError struct {
	Raw      string
	Repaired string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("unrecoverable model response: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
