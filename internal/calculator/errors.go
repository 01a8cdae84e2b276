package calculator

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySeries         = errors.New("empty series")
	ErrUnorderedSeries     = errors.New("series timestamps are not strictly increasing")
	ErrInsufficientHistory = errors.New("insufficient history")
)

// InsufficientHistoryError is advisory: indicators are still computed but some
// of them will be invalid at the latest point.
type InsufficientHistoryError struct {
	Required  int
	Available int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient history: required %d points, available %d", e.Required, e.Available)
}

func (e *InsufficientHistoryError) Is(target error) bool {
	return target == ErrInsufficientHistory
}
