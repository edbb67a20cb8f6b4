package domain

import "errors"

// Pipeline failure kinds, checked with errors.Is at the handler boundary.
// The wrapped cause is logged server-side and never sent to the client.
var (
	// ErrGeneration marks a failure of the external AI risk generator
	ErrGeneration = errors.New("risk generation failed")

	// ErrPersistence marks a store write failure after a successful
	// generator call; the generated result is discarded
	ErrPersistence = errors.New("assessment persistence failed")
)
