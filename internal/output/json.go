package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dmagro/ledger-viewer/internal/ledger"
)

// BlocksReport is the machine-readable form of a block listing.
// Identifiers are never shortened.
type BlocksReport struct {
	Head   string        `json:"head"`
	Scheme string        `json:"scheme"`
	Blocks []BlockReport `json:"blocks"`
}

type BlockReport struct {
	Num             string        `json:"block_num"`
	ID              string        `json:"id"`
	PreviousBlockID string        `json:"previous_block_id"`
	SignerPublicKey string        `json:"signer_public_key"`
	Batches         []BatchReport `json:"batches"`
}

type BatchReport struct {
	ID              string              `json:"id"`
	SignerPublicKey string              `json:"signer_public_key"`
	Transactions    []TransactionReport `json:"transactions"`
}

type TransactionReport struct {
	ID              string         `json:"id"`
	SignerPublicKey string         `json:"signer_public_key"`
	FamilyName      string         `json:"family_name"`
	FamilyVersion   string         `json:"family_version"`
	Payload         map[string]any `json:"payload,omitempty"`
	RawPayload      string         `json:"raw_payload,omitempty"`
}

// StateReport is the machine-readable form of a state listing.
type StateReport struct {
	Head    string             `json:"head"`
	Scheme  string             `json:"scheme"`
	Entries []StateEntryReport `json:"entries"`
}

type StateEntryReport struct {
	Address   string         `json:"address"`
	Namespace string         `json:"namespace"`
	Data      map[string]any `json:"data"`
}

// BuildBlocksReport decodes every visible transaction payload. The genesis
// block, when shown, keeps its payload base64 encoded.
func BuildBlocksReport(data *ledger.BlockData, opts Options) (*BlocksReport, error) {
	codec, err := opts.codec()
	if err != nil {
		return nil, err
	}

	report := &BlocksReport{Head: data.Head, Scheme: codec.Scheme(), Blocks: []BlockReport{}}
	for _, block := range data.Data {
		if block.IsGenesis() && !opts.ShowGenesis {
			continue
		}
		br := BlockReport{
			Num:             block.Header.BlockNum,
			ID:              block.HeaderSignature,
			PreviousBlockID: block.Header.PreviousBlockID,
			SignerPublicKey: block.Header.SignerPublicKey,
			Batches:         make([]BatchReport, 0, block.NumBatches()),
		}
		for i, batch := range block.Batches {
			bt := BatchReport{
				ID:              batch.HeaderSignature,
				SignerPublicKey: batch.Header.SignerPublicKey,
				Transactions:    make([]TransactionReport, 0, batch.NumTransactions()),
			}
			for j, txn := range batch.Transactions {
				tr := TransactionReport{
					ID:              txn.HeaderSignature,
					SignerPublicKey: txn.Header.SignerPublicKey,
					FamilyName:      txn.Header.FamilyName,
					FamilyVersion:   txn.Header.FamilyVersion,
				}
				if block.IsGenesis() {
					tr.RawPayload = txn.Payload
				} else {
					obj, err := codec.DecodeObject(txn.Payload)
					if err != nil {
						return nil, fmt.Errorf("block %s: batch %d: transaction %d: %w", block.Header.BlockNum, i, j, err)
					}
					tr.Payload = obj.Map()
				}
				bt.Transactions = append(bt.Transactions, tr)
			}
			br.Batches = append(br.Batches, bt)
		}
		report.Blocks = append(report.Blocks, br)
	}
	return report, nil
}

// BuildStateReport decodes every visible state entry.
func BuildStateReport(data *ledger.StateData, opts Options) (*StateReport, error) {
	codec, err := opts.codec()
	if err != nil {
		return nil, err
	}

	report := &StateReport{Head: data.Head, Scheme: codec.Scheme(), Entries: []StateEntryReport{}}
	for _, state := range data.Data {
		ns, err := state.Namespace()
		if err != nil {
			return nil, err
		}
		if ns == ledger.SettingsNamespace && !opts.ShowGenesis {
			continue
		}
		obj, err := codec.DecodeObject(state.Data)
		if err != nil {
			return nil, fmt.Errorf("state %s: %w", state.Address, err)
		}
		report.Entries = append(report.Entries, StateEntryReport{
			Address:   state.Address,
			Namespace: ns,
			Data:      obj.Map(),
		})
	}
	return report, nil
}

// RenderJSON writes v as indented JSON.
func RenderJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
