package output

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/dmagro/ledger-viewer/internal/ledger"
)

func newTable(w io.Writer, colorized bool, headers ...interface{}) table.Table {
	tbl := table.New(headers...).WithWriter(w)
	if colorized {
		headerFmt := color.New(color.FgCyan, color.Underline)
		headerFmt.EnableColor()
		tbl.WithHeaderFormatter(headerFmt.SprintfFunc())
	}
	return tbl
}

func payloadSize(encoded string) (uint64, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return 0, fmt.Errorf("error in trying to base64 decode payload: %w", err)
	}
	return uint64(len(raw)), nil
}

// RenderBlocksTable writes one summary row per visible block.
func RenderBlocksTable(w io.Writer, data *ledger.BlockData, opts Options, colorized bool) error {
	tbl := newTable(w, colorized, "Block", "ID", "Previous", "Batches", "Transactions", "Payload")

	for i := range data.Data {
		block := &data.Data[i]
		if block.IsGenesis() && !opts.ShowGenesis {
			continue
		}
		id, err := opts.id(block.HeaderSignature)
		if err != nil {
			return fmt.Errorf("block %s: id: %w", block.Header.BlockNum, err)
		}
		prev, err := opts.id(block.Header.PreviousBlockID)
		if err != nil {
			return fmt.Errorf("block %s: previous block id: %w", block.Header.BlockNum, err)
		}

		txns := 0
		var size uint64
		for _, batch := range block.Batches {
			txns += batch.NumTransactions()
			for _, txn := range batch.Transactions {
				n, err := payloadSize(txn.Payload)
				if err != nil {
					return fmt.Errorf("block %s: %w", block.Header.BlockNum, err)
				}
				size += n
			}
		}
		tbl.AddRow(block.Header.BlockNum, id, prev, block.NumBatches(), txns, humanize.Bytes(size))
	}

	tbl.Print()
	return nil
}

// RenderStateTable writes one row per visible state entry with its key count.
func RenderStateTable(w io.Writer, data *ledger.StateData, opts Options, colorized bool) error {
	codec, err := opts.codec()
	if err != nil {
		return err
	}
	tbl := newTable(w, colorized, "Address", "Namespace", "Keys", "Size")

	for i := range data.Data {
		state := &data.Data[i]
		settings, err := state.IsSettings()
		if err != nil {
			return err
		}
		if settings && !opts.ShowGenesis {
			continue
		}
		ns, _ := state.Namespace()
		addr, err := opts.id(state.Address)
		if err != nil {
			return fmt.Errorf("state %s: %w", state.Address, err)
		}
		obj, err := codec.DecodeObject(state.Data)
		if err != nil {
			return fmt.Errorf("state %s: %w", state.Address, err)
		}
		size, err := payloadSize(state.Data)
		if err != nil {
			return fmt.Errorf("state %s: %w", state.Address, err)
		}
		tbl.AddRow(addr, ns, len(obj), humanize.Bytes(size))
	}

	tbl.Print()
	return nil
}
