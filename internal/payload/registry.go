// Package payload decodes the base64 payloads carried by transactions and
// state entries and renders them as indented key/value text.
//
// The serialization scheme of the decoded bytes is chosen by name from a
// Registry. CBOR and JSON are built in; "custom" is reserved for callers that
// register their own Decoder.
package payload

import (
	"sort"
	"strings"
	"sync"
)

const (
	SchemeCBOR   = "cbor"
	SchemeJSON   = "json"
	SchemeCustom = "custom"
)

// Decoder turns serialized bytes into a generic value.
type Decoder interface {
	Decode(raw []byte) (any, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(raw []byte) (any, error)

func (f DecoderFunc) Decode(raw []byte) (any, error) { return f(raw) }

// Registry maps scheme names to decoders. Names are case-insensitive.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// NewDefaultRegistry returns a registry holding the cbor, json and custom schemes.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(SchemeCBOR, DecoderFunc(decodeCBOR))
	r.Register(SchemeJSON, DecoderFunc(decodeJSON))
	r.Register(SchemeCustom, DecoderFunc(notImplemented))
	return r
}

// Default is the registry used by the package level helpers.
var Default = NewDefaultRegistry()

// Register adds or replaces the decoder for name.
func (r *Registry) Register(name string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders[strings.ToLower(name)] = d
}

// Lookup returns the decoder registered under name.
func (r *Registry) Lookup(name string) (Decoder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decoders[strings.ToLower(name)]
	if !ok {
		return nil, &UnsupportedSchemeError{Scheme: name}
	}
	return d, nil
}

// Names returns the registered scheme names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.decoders))
	for name := range r.decoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Codec resolves scheme once so callers fail before touching any record.
func (r *Registry) Codec(scheme string) (*Codec, error) {
	d, err := r.Lookup(scheme)
	if err != nil {
		return nil, err
	}
	return &Codec{scheme: strings.ToLower(scheme), dec: d}, nil
}

func notImplemented([]byte) (any, error) {
	return nil, ErrNotImplemented
}
