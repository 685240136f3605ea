// internal/util/partial.go
package util

import (
	"errors"
	"fmt"
)

// ErrRange is matched by every RangeError.
var ErrRange = errors.New("invalid range for partial string")

// RangeError reports a shortening window that does not fit inside the string.
type RangeError struct {
	Len  int
	N, M int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range for n/m: n=%d m=%d, string length %d", e.N, e.M, e.Len)
}

func (e *RangeError) Unwrap() error { return ErrRange }

// Partial returns the first n and last m characters of s joined by "...".
// The two windows may overlap, so Partial("ABC", 1, 3) is "A...ABC".
// Lengths count runes, never bytes.
func Partial(s string, n, m int) (string, error) {
	r := []rune(s)
	if n < 0 || m < 0 || n > len(r) || m > len(r) {
		return "", &RangeError{Len: len(r), N: n, M: m}
	}
	return string(r[:n]) + "..." + string(r[len(r)-m:]), nil
}
