package output

import (
	"fmt"

	"github.com/dmagro/ledger-viewer/internal/ledger"
)

// Payload indents, in tabs.
const (
	transactionPayloadIndent = 3
	statePayloadIndent       = 2
)

var blockArrow = []string{"\t\t| |", "\t\t| |", "\t\t\\ /", "\t\t V ", ""}

// RenderBlocks renders every visible block with its batches and transactions.
// The first decode or identifier error aborts the render.
func RenderBlocks(data *ledger.BlockData, opts Options, colorized bool) ([]string, error) {
	r, err := newRenderer(opts, colorized)
	if err != nil {
		return nil, err
	}

	// Blocks are listed newest first; the arrow stops at the last visible block.
	lastBlockNum := "1"
	if opts.ShowGenesis {
		lastBlockNum = ledger.GenesisBlockNum
	}

	for i := range data.Data {
		block := &data.Data[i]
		if block.IsGenesis() && !opts.ShowGenesis {
			continue
		}
		if err := r.block(block); err != nil {
			return nil, fmt.Errorf("block %s: %w", block.Header.BlockNum, err)
		}
		if block.Header.BlockNum != lastBlockNum {
			for _, line := range blockArrow {
				r.lines = append(r.lines, r.style.Arrow(line))
			}
		}
	}
	return r.lines, nil
}

func (r *renderer) block(block *ledger.Block) error {
	id, err := r.opts.id(block.HeaderSignature)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	prev, err := r.opts.id(block.Header.PreviousBlockID)
	if err != nil {
		return fmt.Errorf("previous block id: %w", err)
	}
	signer, err := r.opts.id(block.Header.SignerPublicKey)
	if err != nil {
		return fmt.Errorf("signer public key: %w", err)
	}

	r.emit("%s", r.style.Heading("|Block "+block.Header.BlockNum+" "))
	r.emit("| ID: %s", r.style.ID(id))
	r.emit("| Previous Block ID: %s", r.style.ID(prev))
	r.emit("| Signer Pub Key: %s", signer)
	r.emit("| %s", plural(block.NumBatches(), "batch", "batches", "block"))

	for i := range block.Batches {
		if err := r.batch(block, i); err != nil {
			return fmt.Errorf("batch %d: %w", i, err)
		}
	}
	return nil
}

func (r *renderer) batch(block *ledger.Block, index int) error {
	batch := &block.Batches[index]
	id, err := r.opts.id(batch.HeaderSignature)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	signer, err := r.opts.id(batch.Header.SignerPublicKey)
	if err != nil {
		return fmt.Errorf("signer public key: %w", err)
	}

	r.emit("\t%s", r.style.Heading(fmt.Sprintf("|Batch %d ", index)))
	r.emit("\t| ID: %s", id)
	r.emit("\t| Signer Pub Key: %s", signer)
	r.emit("\t| %s", plural(batch.NumTransactions(), "transaction", "transactions", "batch"))

	for i := range batch.Transactions {
		if err := r.transaction(block, &batch.Transactions[i], i); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return nil
}

func (r *renderer) transaction(block *ledger.Block, txn *ledger.Transaction, index int) error {
	id, err := r.opts.id(txn.HeaderSignature)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	signer, err := r.opts.id(txn.Header.SignerPublicKey)
	if err != nil {
		return fmt.Errorf("signer public key: %w", err)
	}

	r.emit("\t\t%s", r.style.Heading(fmt.Sprintf("|Transaction %d ", index)))
	r.emit("\t\t| ID: %s", id)
	r.emit("\t\t| Signer Pub Key: %s", signer)
	r.emit("\t\t| Payload:")

	// The genesis payload is not known to use the configured scheme.
	if block.IsGenesis() {
		r.lines = append(r.lines, r.style.Payload(txn.Payload))
		return nil
	}
	return r.payloadBlock(txn.Payload, transactionPayloadIndent)
}
