package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/polydawn/refmt/cbor"
	"github.com/polydawn/refmt/tok"
)

// CBOR initial bytes that matter when rebuilding values from tokens.
const (
	cborFloat32 = 0xfa
	cborTagMask = 0x1f
)

var errContainerEnd = errors.New("end of container")

// ByteKey is a CBOR byte string used as a map key.
type ByteKey string

// cborReader builds generic values from the refmt token stream. Map keys may
// be any scalar, and single precision floats keep their width.
type cborReader struct {
	raw []byte
	r   *bytes.Reader
	dec *cbor.Decoder
	tok tok.Token
}

func decodeCBOR(raw []byte) (any, error) {
	if len(raw) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	r := bytes.NewReader(raw)
	c := &cborReader{raw: raw, r: r, dec: cbor.NewDecoder(cbor.DecodeOptions{}, r)}

	v, err := c.value()
	if errors.Is(err, errContainerEnd) {
		return nil, fmt.Errorf("unexpected break at top level")
	}
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%d trailing bytes after CBOR value", r.Len())
	}
	return v, nil
}

func (c *cborReader) offset() int { return len(c.raw) - c.r.Len() }

func (c *cborReader) value() (any, error) {
	start := c.offset()
	if _, err := c.dec.Step(&c.tok); err != nil {
		return nil, err
	}

	switch c.tok.Type {
	case tok.TMapOpen:
		return c.mapValue()
	case tok.TArrOpen:
		return c.arrayValue()
	case tok.TMapClose, tok.TArrClose:
		return nil, errContainerEnd
	case tok.TNull:
		return nil, nil
	case tok.TString:
		return c.tok.Str, nil
	case tok.TBytes:
		return c.tok.Bytes, nil
	case tok.TBool:
		return c.tok.Bool, nil
	case tok.TInt:
		return c.tok.Int, nil
	case tok.TUint:
		return c.tok.Uint, nil
	case tok.TFloat64:
		if c.initialByte(start) == cborFloat32 {
			return float32(c.tok.Float64), nil
		}
		return c.tok.Float64, nil
	}
	return nil, fmt.Errorf("unexpected CBOR token %s", c.tok.Type)
}

// initialByte returns the first byte of the item starting at start,
// skipping a tag header when the token was tagged.
func (c *cborReader) initialByte(start int) byte {
	if !c.tok.Tagged {
		return c.raw[start]
	}
	n := 1
	switch c.raw[start] & cborTagMask {
	case 24:
		n = 2
	case 25:
		n = 3
	case 26:
		n = 5
	case 27:
		n = 9
	}
	return c.raw[start+n]
}

func (c *cborReader) mapValue() (any, error) {
	m := make(map[any]any)
	for {
		k, err := c.value()
		if errors.Is(err, errContainerEnd) {
			return m, nil
		}
		if err != nil {
			return nil, err
		}
		key, err := mapKey(k)
		if err != nil {
			return nil, err
		}

		v, err := c.value()
		if errors.Is(err, errContainerEnd) {
			return nil, fmt.Errorf("map key %s has no value", DebugString(k))
		}
		if err != nil {
			return nil, err
		}
		m[key] = v
	}
}

func (c *cborReader) arrayValue() (any, error) {
	items := []any{}
	for {
		v, err := c.value()
		if errors.Is(err, errContainerEnd) {
			return items, nil
		}
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

func mapKey(k any) (any, error) {
	switch x := k.(type) {
	case []byte:
		return ByteKey(x), nil
	case []any, map[any]any:
		return nil, fmt.Errorf("unsupported map key of type %T", k)
	}
	return k, nil
}

func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return out, nil
}
