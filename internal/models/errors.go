package models

import "errors"

// Sentinel errors shared across packages.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNoEntrants indicates a race card carries no entrants and
	// cannot be analyzed.
	ErrNoEntrants = errors.New("race has no entrants")

	// ErrEmptyCompletion indicates the text-generation collaborator
	// returned an empty response.
	ErrEmptyCompletion = errors.New("empty completion response")
)
