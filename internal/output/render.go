// Package output renders block and state records for the terminal, as
// summary tables, or as JSON documents.
package output

import (
	"fmt"

	"github.com/dmagro/ledger-viewer/internal/payload"
	"github.com/dmagro/ledger-viewer/internal/util"
)

// Identifier shortening window used when full identifiers are not requested.
const (
	idHead = 6
	idTail = 4
)

// Options control a single render.
type Options struct {
	// FullIDs shows identifiers and public keys unmodified.
	FullIDs bool
	// ShowGenesis includes the genesis block or settings namespace entries.
	ShowGenesis bool
	// Scheme names the payload decoder.
	Scheme string
	// Registry resolves Scheme; nil means payload.Default.
	Registry *payload.Registry
}

func (o Options) codec() (*payload.Codec, error) {
	reg := o.Registry
	if reg == nil {
		reg = payload.Default
	}
	return reg.Codec(o.Scheme)
}

func (o Options) id(s string) (string, error) {
	if o.FullIDs {
		return s, nil
	}
	return util.Partial(s, idHead, idTail)
}

// renderer accumulates report lines for one traversal.
type renderer struct {
	opts  Options
	style Style
	codec *payload.Codec
	lines []string
}

func newRenderer(opts Options, colorized bool) (*renderer, error) {
	codec, err := opts.codec()
	if err != nil {
		return nil, err
	}
	return &renderer{opts: opts, style: StyleFor(colorized), codec: codec}, nil
}

func (r *renderer) emit(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

// payloadBlock decodes encoded and emits one styled line per pair.
func (r *renderer) payloadBlock(encoded string, indent int) error {
	text, err := r.codec.Decode(encoded, indent)
	if err != nil {
		return err
	}
	for _, line := range payload.Lines(text) {
		r.lines = append(r.lines, r.style.Payload(line))
	}
	return nil
}

func plural(n int, one, many, where string) string {
	if n == 1 {
		return fmt.Sprintf("There is 1 %s in this %s", one, where)
	}
	return fmt.Sprintf("There are %d %s in this %s", n, many, where)
}
