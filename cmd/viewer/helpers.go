package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dmagro/ledger-viewer/internal/config"
	"github.com/dmagro/ledger-viewer/internal/output"
	"github.com/dmagro/ledger-viewer/internal/payload"
	"github.com/dmagro/ledger-viewer/internal/reports"
	"github.com/dmagro/ledger-viewer/internal/source"
)

const defaultTimeout = 10 * time.Second

// Output formats accepted by --format.
const (
	formatTerminal = "terminal"
	formatTable    = "table"
	formatJSON     = "json"
)

// renderFlags are the per-command flags controlling fetch and render.
type renderFlags struct {
	file        string
	scheme      string
	format      string
	fullIDs     bool
	showGenesis bool
	report      bool
	query       source.Query
}

func (rf *renderFlags) register(fs *pflag.FlagSet, withFile bool) {
	if withFile {
		fs.StringVar(&rf.file, "file", "", "Read a saved endpoint response instead of querying a node")
	}
	fs.StringVar(&rf.scheme, "scheme", "", "Payload scheme: "+strings.Join(payload.Default.Names(), "|")+" (default from config, else cbor)")
	fs.StringVar(&rf.format, "format", formatTerminal, "Output format: terminal|table|json")
	fs.BoolVar(&rf.fullIDs, "full-ids", false, "Show identifiers and keys unshortened")
	fs.BoolVar(&rf.showGenesis, "show-genesis", false, "Include the genesis block and settings state")
	fs.BoolVar(&rf.report, "report", false, "Also write a JSON report to the reports directory")
	fs.IntVar(&rf.query.Limit, "limit", 0, "Maximum records per page (0 = node default)")
	fs.StringVar(&rf.query.Head, "head", "", "Read as of this head block id")
}

// registerStart adds --start for a command that reads a single endpoint.
func (rf *renderFlags) registerStart(fs *pflag.FlagSet, endpoint source.Endpoint) {
	rf.query.StartOn = endpoint
	fs.StringVar(&rf.query.Start, "start", "", "Paging start id of the first "+endpoint.Noun())
}

// session holds everything a command needs after flags and config are resolved.
type session struct {
	src       source.Source
	srcName   string
	opts      output.Options
	colorized bool
	format    string
	report    bool
	out       io.Writer
}

func newSession(cmd *cobra.Command, g *globalFlags, rf *renderFlags) (*session, error) {
	format := strings.ToLower(rf.format)
	switch format {
	case formatTerminal, formatTable, formatJSON:
	default:
		return nil, fmt.Errorf("unsupported format: %s", rf.format)
	}

	needNode := rf.file == "" && g.url == ""
	cfg, err := loadConfig(g.configPath, needNode)
	if err != nil {
		return nil, err
	}
	defaults := config.Defaults{Timeout: defaultTimeout, Scheme: payload.SchemeCBOR, Color: config.ColorAuto}
	if cfg != nil {
		defaults = cfg.Defaults
	}

	s := &session{format: format, report: rf.report, out: cmd.OutOrStdout()}

	switch {
	case rf.file != "":
		s.src = source.FileSource{Path: rf.file}
		s.srcName = rf.file
	case g.url != "":
		if err := config.ValidateURL(g.url); err != nil {
			return nil, fmt.Errorf("--url: %w", err)
		}
		s.src = source.NewHTTPSource(g.url, g.url, defaults.Timeout, rf.query)
		s.srcName = g.url
	default:
		node, err := cfg.Node(g.node)
		if err != nil {
			return nil, err
		}
		s.src = source.NewHTTPSource(node.Name, node.URL, node.Timeout, rf.query)
		s.srcName = node.Name
	}

	s.opts = output.Options{
		FullIDs:     defaults.FullIDs,
		ShowGenesis: defaults.ShowGenesis,
		Scheme:      defaults.Scheme,
	}
	flags := cmd.Flags()
	if flags.Changed("full-ids") {
		s.opts.FullIDs = rf.fullIDs
	}
	if flags.Changed("show-genesis") || flags.Changed("show-settings") {
		s.opts.ShowGenesis = rf.showGenesis
	}
	if rf.scheme != "" {
		s.opts.Scheme = rf.scheme
	}
	if s.opts.Scheme == "" {
		s.opts.Scheme = payload.SchemeCBOR
	}

	colorMode := defaults.Color
	if g.color != "" {
		colorMode = g.color
	}
	s.colorized, err = colorEnabled(colorMode, s.out)
	if err != nil {
		return nil, err
	}
	if format == formatJSON {
		s.colorized = false
		output.DisableColors()
	}

	slog.Debug("Resolved session", "source", s.srcName, "scheme", s.opts.Scheme,
		"full_ids", s.opts.FullIDs, "show_genesis", s.opts.ShowGenesis, "format", format, "color", s.colorized)
	return s, nil
}

// loadConfig loads the config file. A missing file is only an error when a
// node has to be looked up in it.
func loadConfig(path string, required bool) (*config.Config, error) {
	if !required {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch strings.ToLower(mode) {
	case config.ColorAlways:
		return true, nil
	case config.ColorNever:
		return false, nil
	case config.ColorAuto, "":
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("unsupported color mode: %s", mode)
	}
}

// writeReport saves data under reports/ and tells the user where.
func (s *session) writeReport(cmd *cobra.Command, command string, data any) error {
	if !s.report {
		return nil
	}
	path, err := reports.WriteJSON(reports.NewEnvelope(command, s.srcName, data), command)
	if err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "JSON report written to: %s\n", path)
	return nil
}
