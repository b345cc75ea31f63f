// Package services implements the proxy's business logic: dispatching a
// request to the right upstream query mode and wrapping single-game lookups
// with the persistent result cache.
//
// This file centralizes service-level error values. Translation into HTTP
// statuses and stable response codes happens at the handler layer.
package services

import "errors"

var (
	// ErrMissingGameName is returned when a search request carries no game
	// name (required unless the request selects a criteria listing).
	ErrMissingGameName = errors.New("gameName is required")

	// ErrUnknownQueryType is returned when queryType is neither "search" nor
	// a known criteria listing value.
	ErrUnknownQueryType = errors.New("unknown queryType")
)
