package store

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks failures to reach the storage layer at all, as opposed
// to a storage answer the caller may not like.
var ErrUnavailable = errors.New("storage unavailable")

// DuplicateError is returned when a write would violate one of the unique
// constraints. Field names the conflicting attribute.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	switch e.Field {
	case FieldEmail:
		return "User with this email already exists"
	case FieldMobile:
		return "User with this mobile number already exists"
	}
	return fmt.Sprintf("duplicate value for %s", e.Field)
}

const (
	FieldEmail  = "emailAddress"
	FieldMobile = "mobileNumber"
)
