package service

import "errors"

var (
	// ErrInvalidInput marks validation failures that map to HTTP 400.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAllocationOverLimit is returned when target allocations for a
	// non-watchlist account would sum past 100%.
	ErrAllocationOverLimit = errors.New("target allocations exceed 100%")

	// ErrInsightsUnavailable is returned when no insights backend is configured.
	ErrInsightsUnavailable = errors.New("insights are not configured")
)
