package payload

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBase64         = errors.New("invalid base64 payload")
	ErrDeserializationFailed = errors.New("payload deserialization failed")
	ErrNotAnObject           = errors.New("payload is not a key/value object")
	ErrNotImplemented        = errors.New("payload scheme not implemented")
	ErrUnsupportedScheme     = errors.New("unsupported deserialization method")
)

// DeserializationError wraps the failure of a scheme decoder.
type DeserializationError struct {
	Scheme string
	Err    error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("error in trying to deserialize payload with %s: %v", e.Scheme, e.Err)
}

func (e *DeserializationError) Is(target error) bool { return target == ErrDeserializationFailed }

func (e *DeserializationError) Unwrap() error { return e.Err }

// UnsupportedSchemeError is returned when no decoder is registered under Scheme.
type UnsupportedSchemeError struct {
	Scheme string
}

func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("unsupported deserialization method: %q", e.Scheme)
}

func (e *UnsupportedSchemeError) Is(target error) bool { return target == ErrUnsupportedScheme }
