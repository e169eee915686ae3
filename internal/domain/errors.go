package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product ID has no offers in the snapshot
	ErrProductNotFound = errors.New("product not found in offer table")

	// ErrEmptyOfferSet is returned when an operation requires at least one offer
	ErrEmptyOfferSet = errors.New("empty offer set")

	// ErrInvalidMargin is returned when a negotiation margin is outside [0,1)
	ErrInvalidMargin = errors.New("negotiation margin must be in [0,1)")

	// ErrInvalidThreshold is returned when a variance or preference threshold is outside [0,1)
	ErrInvalidThreshold = errors.New("threshold must be in [0,1)")

	// ErrInvalidDemandLevel is returned when a demand string is not Low/Medium/High
	ErrInvalidDemandLevel = errors.New("demand level must be Low, Medium or High")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrMissingColumns is returned when the catalog CSV lacks required columns
	ErrMissingColumns = errors.New("catalog CSV missing required columns")
)
