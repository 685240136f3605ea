package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return raw
}

func TestCounts(t *testing.T) {
	var data BlockData
	assert.Equal(t, 0, data.NumBlocks())
	data.Data = append(data.Data, Block{}, Block{})
	assert.Equal(t, 2, data.NumBlocks())

	var block Block
	assert.Equal(t, 0, block.NumBatches())
	block.Batches = append(block.Batches, Batch{})
	assert.Equal(t, 1, block.NumBatches())

	var batch Batch
	assert.Equal(t, 0, batch.NumTransactions())
	batch.Transactions = append(batch.Transactions, Transaction{}, Transaction{})
	assert.Equal(t, 2, batch.NumTransactions())

	var state StateData
	assert.Equal(t, 0, state.NumStates())
	state.Data = append(state.Data, State{})
	assert.Equal(t, 1, state.NumStates())
}

func TestIsGenesis(t *testing.T) {
	assert.True(t, (&Block{Header: BlockHeader{BlockNum: "0"}}).IsGenesis())
	assert.False(t, (&Block{Header: BlockHeader{BlockNum: "1"}}).IsGenesis())
	assert.False(t, (&Block{Header: BlockHeader{BlockNum: "10"}}).IsGenesis())
}

func TestNamespace(t *testing.T) {
	s := State{Address: "1cf126e83dbe4cdd233ab6402f1c19b0d93543f5da490356beab9c53435eef849dfcab"}
	ns, err := s.Namespace()
	require.NoError(t, err)
	assert.Equal(t, "1cf126", ns)

	settings, err := s.IsSettings()
	require.NoError(t, err)
	assert.False(t, settings)

	s.Address = SettingsNamespace + s.Address[NamespaceLength:]
	settings, err = s.IsSettings()
	require.NoError(t, err)
	assert.True(t, settings)
}

func TestNamespaceInvalidLength(t *testing.T) {
	for _, addr := range []string{"", "123ABC", "1cf126e83dbe4cdd233ab6402f1c19b0d93543f5da490356beab9c53435eef849dfcab00"} {
		s := State{Address: addr}
		_, err := s.Namespace()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidAddressLength), "address %q", addr)

		_, err = s.IsSettings()
		assert.ErrorIs(t, err, ErrInvalidAddressLength)
	}
}

func TestNamespaceCountsCharacters(t *testing.T) {
	s := State{Address: strings.Repeat("é", AddressLength)}
	ns, err := s.Namespace()
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", NamespaceLength), ns)

	// 70 bytes but only 35 characters
	s.Address = strings.Repeat("é", AddressLength/2)
	_, err = s.Namespace()
	require.ErrorIs(t, err, ErrInvalidAddressLength)
	assert.Contains(t, err.Error(), "length 35, expected 70")
}

func TestParseBlocks(t *testing.T) {
	data, err := ParseBlocks(readFixture(t, "blocks.json"))
	require.NoError(t, err)

	require.Equal(t, 3, data.NumBlocks())
	assert.Equal(t, "2", data.Data[0].Header.BlockNum)
	assert.True(t, data.Data[2].IsGenesis())
	assert.Equal(t, data.Data[1].HeaderSignature, data.Data[0].Header.PreviousBlockID)
	assert.Equal(t, 2, data.Data[0].NumBatches())
	assert.Equal(t, 2, data.Data[0].Batches[0].NumTransactions())
	assert.Equal(t, "intkey", data.Data[1].Batches[0].Transactions[0].Header.FamilyName)
	assert.Equal(t, "o2VWYWx1ZQFkVmVyYmNpbmNkTmFtZWRudW0x", data.Data[1].Batches[0].Transactions[0].Payload)
	assert.Nil(t, data.Paging.Limit)
}

func TestParseBlocksEmpty(t *testing.T) {
	raw := []byte(`{
		"data": [],
		"head": "",
		"link": "",
		"paging": {"limit": null, "start": null}
	}`)
	data, err := ParseBlocks(raw)
	require.NoError(t, err)
	assert.Equal(t, 0, data.NumBlocks())

	state, err := ParseState(raw)
	require.NoError(t, err)
	assert.Equal(t, 0, state.NumStates())
}

func TestParseState(t *testing.T) {
	data, err := ParseState(readFixture(t, "state.json"))
	require.NoError(t, err)
	require.Equal(t, 3, data.NumStates())

	settings, err := data.Data[0].IsSettings()
	require.NoError(t, err)
	assert.True(t, settings)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		parse func([]byte) error
	}{
		{"blocks_malformed", "malformed_block_data.json", func(b []byte) error { _, err := ParseBlocks(b); return err }},
		{"blocks_not_json", "not_json.json", func(b []byte) error { _, err := ParseBlocks(b); return err }},
		{"blocks_given_state", "state.json", func(b []byte) error { _, err := ParseBlocks(b); return err }},
		{"state_malformed", "malformed_block_data.json", func(b []byte) error { _, err := ParseState(b); return err }},
		{"state_not_json", "not_json.json", func(b []byte) error { _, err := ParseState(b); return err }},
		{"state_given_blocks", "blocks.json", func(b []byte) error { _, err := ParseState(b); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parse(readFixture(t, tt.file))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSchemaMismatch)
			assert.Contains(t, err.Error(), "error in parsing")
		})
	}
}

func TestParseBlocksWrongType(t *testing.T) {
	raw := []byte(`{"data": [], "head": 7, "link": "", "paging": {}}`)
	_, err := ParseBlocks(raw)

	var serr *SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "block", serr.Document)
	require.NotEmpty(t, serr.Violations)
	assert.Contains(t, serr.Violations[0], "head")
}
