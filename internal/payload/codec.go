package payload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Codec decodes payloads with a single, already resolved scheme.
type Codec struct {
	scheme string
	dec    Decoder
}

// Scheme returns the scheme name the codec was resolved for.
func (c *Codec) Scheme() string { return c.scheme }

// DecodeObject base64-decodes payload and deserializes it into an Object.
func (c *Codec) DecodeObject(payload string) (Object, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("error in trying to base64 decode payload: %w: %v", ErrInvalidBase64, err)
	}

	v, err := c.dec.Decode(raw)
	if err != nil {
		if errors.Is(err, ErrNotImplemented) {
			return nil, fmt.Errorf("scheme %q: %w", c.scheme, err)
		}
		return nil, &DeserializationError{Scheme: c.scheme, Err: err}
	}

	obj, ok := toObject(v)
	if !ok {
		return nil, fmt.Errorf("error in trying to convert deserialized payload to object: %w (got %T)", ErrNotAnObject, v)
	}
	return obj, nil
}

// Decode returns the payload rendered as one "key : value" line per pair,
// each line prefixed with indent tabs.
func (c *Codec) Decode(payload string, indent int) (string, error) {
	obj, err := c.DecodeObject(payload)
	if err != nil {
		return "", err
	}
	return obj.Format(indent), nil
}

// Decode decodes payload with the named scheme from the Default registry.
func Decode(payload, scheme string, indent int) (string, error) {
	c, err := Default.Codec(scheme)
	if err != nil {
		return "", err
	}
	return c.Decode(payload, indent)
}

// Lines splits text produced by Decode into lines without the trailing newline.
func Lines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
