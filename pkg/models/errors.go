package models

import "errors"

var (
	// ErrProductNotFound is returned when no product matches the requested id.
	ErrProductNotFound = errors.New("product not found")

	// ErrAlertNotFound is returned when no price alert matches the requested id.
	ErrAlertNotFound = errors.New("price alert not found")

	ErrInvalidTargetPrice = errors.New("target price must be positive")
	ErrMissingUser        = errors.New("user id is required")
)
