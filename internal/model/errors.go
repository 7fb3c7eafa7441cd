package model

import (
	"errors"
	"fmt"
)

// Failure taxonomy. Errors are wrapped with fmt.Errorf("...: %w") and classified with Reason.
var (
	// ErrConfiguration marks a catalog entry or task with missing or invalid fields.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound marks an item name unknown to the price reference.
	ErrNotFound = errors.New("item not found")
	// ErrPriceUnavailable marks an item with neither bazaar nor auction price.
	ErrPriceUnavailable = errors.New("price unavailable")
	// ErrFetch marks a transport failure talking to a price service.
	ErrFetch = errors.New("fetch error")
	// ErrDivisionUndefined marks a ratio whose denominator is zero.
	ErrDivisionUndefined = errors.New("division undefined")
)

// Reason codes reported per failed task.
const (
	ReasonConfiguration    = "configuration"
	ReasonNotFound         = "not_found"
	ReasonPriceUnavailable = "price_unavailable"
	ReasonFetch            = "fetch"
	ReasonUnknown          = "unknown"
)

// Reason classifies err into one of the reason codes.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrConfiguration):
		return ReasonConfiguration
	case errors.Is(err, ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, ErrPriceUnavailable):
		return ReasonPriceUnavailable
	case errors.Is(err, ErrFetch):
		return ReasonFetch
	default:
		return ReasonUnknown
	}
}

// TaskError records why a single task failed.
type TaskError struct {
	Task Task
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %s: %v", e.Task.Key(), e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }

// Reason is the classified failure reason.
func (e *TaskError) Reason() string { return Reason(e.Err) }
