package core

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the store and the persistence adapters. Every
// specific validation error wraps ErrValidation.
var (
	ErrValidation = errors.New("validation error")
	ErrDuplicate  = errors.New("duplicate transaction")
	ErrNotFound   = errors.New("transaction not found")
	ErrEmptyStore = errors.New("no transactions")
	ErrIO         = errors.New("storage i/o error")
)

var (
	ErrInvalidAmount     = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrInvalidDate       = fmt.Errorf("%w: invalid date, expected YYYY-MM-DD", ErrValidation)
	ErrInvalidType       = fmt.Errorf("%w: type must be Income or Expense", ErrValidation)
	ErrEmptyCategory     = fmt.Errorf("%w: empty category", ErrValidation)
	ErrEmptyID           = fmt.Errorf("%w: empty id", ErrValidation)
	ErrEmptyQuery        = fmt.Errorf("%w: empty search query", ErrValidation)
	ErrInvalidSortKey    = fmt.Errorf("%w: sort key must be type, amount or date", ErrValidation)
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported file format", ErrValidation)
)
