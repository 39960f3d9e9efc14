package transform

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload is returned when the payload is not a list of flat records.
var ErrMalformedPayload = errors.New("malformed labour force payload")

// MissingColumnError reports a tracked column that no record carries.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("labour force payload has no %q column", e.Column)
}
