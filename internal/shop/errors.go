package shop

import "errors"

// ErrNotFound is returned when an operation targets a record that does not
// exist. Any other store error is an unexpected persistence failure.
var ErrNotFound = errors.New("not found")

// ErrInvalidStatus is returned when a status outside the enumeration reaches
// the store. The HTTP boundary checks first; this is defense in depth.
var ErrInvalidStatus = errors.New("invalid status")
