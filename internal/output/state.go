package output

import (
	"fmt"

	"github.com/dmagro/ledger-viewer/internal/ledger"
)

// RenderState renders every visible state entry with its decoded data.
// Settings namespace entries are skipped unless opts.ShowGenesis is set.
func RenderState(data *ledger.StateData, opts Options, colorized bool) ([]string, error) {
	r, err := newRenderer(opts, colorized)
	if err != nil {
		return nil, err
	}

	for i := range data.Data {
		state := &data.Data[i]
		settings, err := state.IsSettings()
		if err != nil {
			return nil, err
		}
		if settings && !opts.ShowGenesis {
			continue
		}

		addr, err := opts.id(state.Address)
		if err != nil {
			return nil, fmt.Errorf("state %s: %w", state.Address, err)
		}
		r.emit("%s %s", r.style.Label("State Address:"), addr)
		r.emit("\tData:")
		if err := r.payloadBlock(state.Data, statePayloadIndent); err != nil {
			return nil, fmt.Errorf("state %s: %w", state.Address, err)
		}
	}
	return r.lines, nil
}
