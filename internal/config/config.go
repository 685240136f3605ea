// Package config loads the viewer configuration: the nodes that can be
// queried and the defaults applied to every render.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Color modes accepted by defaults.color and --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the root of the YAML configuration file.
// It lists the nodes that can be queried and the defaults shared by every command.
type Config struct {
	Nodes    []Node   `yaml:"nodes"`    // REST API endpoints, the first one is the default
	Defaults Defaults `yaml:"defaults"` // Settings applied unless a flag overrides them
}

// Node is one REST API endpoint. Timeout falls back to Defaults.Timeout.
type Node struct {
	Name    string        `yaml:"name"`              // Node identifier used by --node (e.g., "local")
	URL     string        `yaml:"url"`               // REST API base URL (supports ${VAR} env expansion)
	Timeout time.Duration `yaml:"timeout,omitempty"` // Per-node request timeout (optional)
}

// Defaults apply to every command unless overridden by a flag.
type Defaults struct {
	Timeout     time.Duration `yaml:"timeout"`      // HTTP request timeout (e.g., "10s")
	Scheme      string        `yaml:"scheme"`       // Payload serialization scheme (cbor when empty)
	FullIDs     bool          `yaml:"full_ids"`     // Print identifiers unshortened
	ShowGenesis bool          `yaml:"show_genesis"` // Include the genesis block in block listings
	Color       string        `yaml:"color"`        // One of auto, always, never (auto when empty)
}

// Validate checks required fields and fills node timeouts from the defaults.
// Suspicious timeouts produce warnings on stderr.
func (c *Config) Validate() error {
	if c.Defaults.Timeout == 0 {
		return fmt.Errorf("defaults.timeout is required")
	}
	if c.Defaults.Scheme == "" {
		c.Defaults.Scheme = "cbor"
	}
	switch c.Defaults.Color {
	case "":
		c.Defaults.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("defaults.color must be one of auto, always, never (got %q)", c.Defaults.Color)
	}
	if len(c.Nodes) == 0 {
		return fmt.Errorf("at least one node is required")
	}

	warnTimeout := func(scope string, d time.Duration) {
		const low = 500 * time.Millisecond
		const high = 2 * time.Minute
		if d > 0 && d < low {
			fmt.Fprintf(os.Stderr, "Warning: %s timeout is very low (%s); requests may fail under normal network jitter\n", scope, d)
		}
		if d > high {
			fmt.Fprintf(os.Stderr, "Warning: %s timeout is very high (%s); failures may take a long time to surface\n", scope, d)
		}
	}
	warnTimeout("defaults", c.Defaults.Timeout)

	seen := make(map[string]bool, len(c.Nodes))
	for i := range c.Nodes {
		n := &c.Nodes[i]
		if n.Name == "" {
			return fmt.Errorf("node %d: name is required", i)
		}
		if seen[n.Name] {
			return fmt.Errorf("node %s: duplicate name", n.Name)
		}
		seen[n.Name] = true
		if n.Timeout == 0 {
			n.Timeout = c.Defaults.Timeout
		}
		if err := ValidateURL(n.URL); err != nil {
			return fmt.Errorf("node %s: %w", n.Name, err)
		}
		warnTimeout(fmt.Sprintf("node %s", n.Name), n.Timeout)
	}

	return nil
}

// ValidateURL requires an absolute http or https URL.
func ValidateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid url (missing scheme or host)")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid url scheme %q (expected http or https)", u.Scheme)
	}
	return nil
}

// Node returns the node with the given name, or the first node when name is empty.
func (c *Config) Node(name string) (*Node, error) {
	if name == "" {
		return &c.Nodes[0], nil
	}
	for i := range c.Nodes {
		if c.Nodes[i].Name == name {
			return &c.Nodes[i], nil
		}
	}
	return nil, fmt.Errorf("unknown node %q", name)
}

// Load reads a YAML configuration file, expands environment variables and
// validates the result.
//
// Parameters:
//   - path: File path to the YAML configuration file
//
// Returns:
//   - *Config: Parsed and validated configuration, node timeouts filled in
//   - error: File read, parse, or validation error
//
// Environment variable expansion:
//
//	URLs can use ${VAR} syntax, expanded with os.ExpandEnv.
//	An unset variable expands to the empty string, which fails validation.
//
// Validation rules:
//   - defaults.timeout must be set
//   - defaults.color must be auto, always or never when set
//   - At least one node must be configured
//   - Node names must be present and unique
//   - Each node URL must be an absolute http or https URL
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadEnv sets environment variables from the .env file at path. The root
// command calls it before loading the configuration so ${VAR} references resolve.
//
// File format:
//   - Each line contains KEY=VALUE, split on the first "="
//   - Empty lines are ignored
//   - Lines starting with # are comments
//   - Lines without "=" are skipped
//   - Values may be quoted with single or double quotes (quotes are stripped)
//
// Example:
//
//	LEDGER_REMOTE_URL=https://ledger.example.com:8008
//	# local node needs no entry
//
// A missing file is not an error. Values from the file override variables
// already present in the environment.
func LoadEnv(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		os.Setenv(strings.TrimSpace(key), strings.Trim(strings.TrimSpace(value), `"'`))
	}
}
