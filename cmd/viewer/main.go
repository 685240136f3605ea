// Command viewer renders blocks and state from a ledger node REST API or
// from saved endpoint responses.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmagro/ledger-viewer/internal/config"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	node       string
	url        string
	color      string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "viewer",
		Short: "Inspect blocks and state of a ledger node",
		Long: `Fetch blocks or state from a node REST API (or a saved response) and
print every record with its decoded payload.

Examples:
  viewer blocks --url http://localhost:8008
  viewer blocks --file blocks.json --show-genesis
  viewer state --node local --address 1cf126 --full-ids
  viewer snapshot --format json --report`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv(".env")
			setupLogging(cmd, g.verbose)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&g.configPath, "config", "config/viewer.yaml", "Config file path")
	root.PersistentFlags().StringVar(&g.node, "node", "", "Node name from config (default: first node)")
	root.PersistentFlags().StringVar(&g.url, "url", "", "Node base URL, overrides --node")
	root.PersistentFlags().StringVar(&g.color, "color", "", "Color mode: auto|always|never (default from config, else auto)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(blocksCmd(g), stateCmd(g), snapshotCmd(g), schemesCmd())
	return root
}

func setupLogging(cmd *cobra.Command, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
