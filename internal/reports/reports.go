// Package reports writes timestamped JSON report files.
//
// Commands use this package when the --report flag is set. Reports are written
// to the "reports/" directory in the current working directory.
package reports

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Dir is the directory report files are written to.
const Dir = "reports"

// Envelope wraps a rendered report with where and when it was taken.
type Envelope struct {
	Timestamp time.Time `json:"timestamp"` // UTC time the report was taken
	Command   string    `json:"command"`   // Command that produced it (e.g., "blocks", "snapshot")
	Source    string    `json:"source"`    // Node name, --url value, or input file path
	Data      any       `json:"data"`      // Command specific report body
}

// NewEnvelope stamps data with the current UTC time.
func NewEnvelope(command, source string, data any) Envelope {
	return Envelope{Timestamp: time.Now().UTC(), Command: command, Source: source, Data: data}
}

// WriteJSON pretty-prints data as JSON into a timestamped file in Dir.
//
// Parameters:
//   - data: Any JSON-marshalable value, usually an Envelope.
//   - prefix: Filename prefix (e.g., "blocks", "state", "snapshot"). Empty means "report".
//
// Returns:
//   - string: The path to the written file.
//   - error: Any error creating the directory, marshaling JSON, or writing the file.
//
// Filenames follow: {prefix}-{YYYYMMDD-HHMMSS}.json, with the timestamp in UTC.
// A report written within the same second as an earlier one replaces it.
func WriteJSON(data any, prefix string) (string, error) {
	return writeJSON(Dir, data, prefix, time.Now().UTC())
}

func writeJSON(dir string, data any, prefix string, now time.Time) (string, error) {
	if prefix == "" {
		prefix = "report"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%s.json", prefix, now.Format("20060102-150405")))

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal JSON: %w", err)
	}

	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return path, nil
}
