package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrServerOffline indicates the catalog API is unreachable
	ErrServerOffline = errors.New("catalog API is unreachable")

	// ErrUnexpectedResponse indicates the API answered with a shape we cannot read
	ErrUnexpectedResponse = errors.New("unexpected API response")
)
