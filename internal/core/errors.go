package core

import (
	"errors"
	"fmt"
)

// Field names reported by ValidationError.
const (
	FieldDate          = "date"
	FieldTotalCost     = "total_cost"
	FieldPricePerLitre = "price_per_litre"
	FieldDistanceKm    = "distance_km"
	FieldID            = "id"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("entry not found")
	ErrStorage       = errors.New("storage failure")
	ErrDenied        = errors.New("access denied")
	ErrNotEnoughData = errors.New("not enough data")
)

// ValidationError reports which raw field was rejected and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError names the id that a store could not find.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("entry %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFound is used by stores when an id does not exist.
func NewNotFound(id int64) error {
	return &NotFoundError{ID: id}
}

// StorageError wraps a persistence failure with the operation that hit it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// UserMessage renders err in terms a non-technical user understands. It
// never exposes internal codes; storage causes are summarised.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}

	var nf *NotFoundError
	if errors.As(err, &nf) {
		return fmt.Sprintf("entry %d was not found", nf.ID)
	}

	var se *StorageError
	if errors.As(err, &se) {
		return fmt.Sprintf("could not %s: the logbook file could not be read or written", storageVerb(se.Op))
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		return "some of the values entered are not valid"
	case errors.Is(err, ErrNotFound):
		return "the entry was not found"
	case errors.Is(err, ErrDenied):
		return "incorrect password"
	case errors.Is(err, ErrNotEnoughData):
		return "at least two entries are needed to draw a chart"
	}
	return "something went wrong, please try again"
}

func storageVerb(op string) string {
	switch op {
	case "create":
		return "save the entry"
	case "update":
		return "update the entry"
	case "delete":
		return "delete the entry"
	case "get", "list":
		return "load the entries"
	default:
		return "access the logbook"
	}
}
