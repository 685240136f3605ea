// Package ledger defines the record tree returned by the node REST API.
//
// Two roots exist: BlockData for the /blocks endpoint and StateData for the
// /state endpoint. Both are built once by ParseBlocks / ParseState and are
// never mutated afterwards; renderers only read them.
package ledger

// GenesisBlockNum is the block_num of the genesis (settings) block.
const GenesisBlockNum = "0"

// BlockData is the root document of the /blocks endpoint.
type BlockData struct {
	Data   []Block `json:"data"`
	Head   string  `json:"head"`
	Link   string  `json:"link"`
	Paging Paging  `json:"paging"`
}

// NumBlocks returns the number of blocks in the document.
func (d *BlockData) NumBlocks() int { return len(d.Data) }

// Paging is only populated when the request asked for paging.
type Paging struct {
	Limit *string `json:"limit"`
	Start *string `json:"start"`
}

// Block holds block metadata and its batches.
type Block struct {
	Batches         []Batch     `json:"batches"`
	Header          BlockHeader `json:"header"`
	HeaderSignature string      `json:"header_signature"`
}

// NumBatches returns the number of batches in the block.
func (b *Block) NumBatches() int { return len(b.Batches) }

// IsGenesis reports whether b is the genesis block.
func (b *Block) IsGenesis() bool { return b.Header.BlockNum == GenesisBlockNum }

// BlockHeader is the signed metadata of a Block.
type BlockHeader struct {
	BatchIDs        []string `json:"batch_ids"`
	BlockNum        string   `json:"block_num"` // decimal string, "0" is genesis
	Consensus       string   `json:"consensus"`
	PreviousBlockID string   `json:"previous_block_id"`
	SignerPublicKey string   `json:"signer_public_key"`
	StateRootHash   string   `json:"state_root_hash"`
}

// Batch holds batch metadata and its transactions.
type Batch struct {
	Header          BatchHeader   `json:"header"`
	HeaderSignature string        `json:"header_signature"`
	Trace           bool          `json:"trace"`
	Transactions    []Transaction `json:"transactions"`
}

// NumTransactions returns the number of transactions in the batch.
func (b *Batch) NumTransactions() int { return len(b.Transactions) }

type BatchHeader struct {
	SignerPublicKey string   `json:"signer_public_key"`
	TransactionIDs  []string `json:"transaction_ids"`
}

// Transaction carries a base64 payload that was itself serialized with a
// family specific scheme (usually CBOR) before encoding.
type Transaction struct {
	Header          TransactionHeader `json:"header"`
	HeaderSignature string            `json:"header_signature"`
	Payload         string            `json:"payload"`
}

type TransactionHeader struct {
	BatcherPublicKey string   `json:"batcher_public_key"`
	Dependencies     []string `json:"dependencies"`
	FamilyName       string   `json:"family_name"`
	FamilyVersion    string   `json:"family_version"`
	Inputs           []string `json:"inputs"`
	Nonce            string   `json:"nonce"`
	Outputs          []string `json:"outputs"`
	PayloadSHA512    string   `json:"payload_sha512"`
	SignerPublicKey  string   `json:"signer_public_key"`
}
