// Package common defines shared sentinel errors used across fieldtrack
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors raised before any store write.
	ErrorValidation = errors.New("validation error")

	// Referential validation errors.
	ErrorEntityNotFound     = errors.New("entity does not exist")
	ErrorCollectionNotFound = errors.New("collection does not exist")
)
