package salesfile

import (
	"errors"
	"fmt"
)

var (
	ErrNotInteger    = errors.New("not an integer")
	ErrPriceWidth    = errors.New("price field must span 10 characters")
	ErrPriceNotDigit = errors.New("price field must contain only digits")
	ErrFieldTooWide  = errors.New("value does not fit the field width")
)

// DecodeError reports the first field of a line that could not be decoded.
type DecodeError struct {
	Field string
	Line  string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
