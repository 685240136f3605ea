package ledger

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ErrSchemaMismatch is matched by every SchemaError.
var ErrSchemaMismatch = errors.New("document does not match schema")

// SchemaError reports a document that is not valid JSON or that deviates from
// the endpoint schema (missing field, wrong type).
type SchemaError struct {
	Document   string
	Violations []string
	Err        error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error in parsing %s data: %v", e.Document, e.Err)
	}
	return fmt.Sprintf("error in parsing %s data: %s", e.Document, strings.Join(e.Violations, "; "))
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchemaMismatch }

func (e *SchemaError) Unwrap() error { return e.Err }

var (
	blocksSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) { return loadSchema("blocks") })
	stateSchema  = sync.OnceValues(func() (*gojsonschema.Schema, error) { return loadSchema("state") })
)

func loadSchema(name string) (*gojsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("read %s schema: %w", name, err)
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", name, err)
	}
	return s, nil
}

func validate(doc string, schema *gojsonschema.Schema, raw []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return &SchemaError{Document: doc, Err: err}
	}
	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, re := range result.Errors() {
			violations = append(violations, re.String())
		}
		return &SchemaError{Document: doc, Violations: violations}
	}
	return nil
}

// ParseBlocks validates raw against the /blocks schema and decodes it.
func ParseBlocks(raw []byte) (*BlockData, error) {
	schema, err := blocksSchema()
	if err != nil {
		return nil, err
	}
	if err := validate("block", schema, raw); err != nil {
		return nil, err
	}

	var data BlockData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &SchemaError{Document: "block", Err: err}
	}
	return &data, nil
}

// ParseState validates raw against the /state schema and decodes it.
func ParseState(raw []byte) (*StateData, error) {
	schema, err := stateSchema()
	if err != nil {
		return nil, err
	}
	if err := validate("state", schema, raw); err != nil {
		return nil, err
	}

	var data StateData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &SchemaError{Document: "state", Err: err}
	}
	return &data, nil
}
