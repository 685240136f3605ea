package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmagro/ledger-viewer/internal/ledger"
	"github.com/dmagro/ledger-viewer/internal/output"
	"github.com/dmagro/ledger-viewer/internal/source"
)

func blocksCmd(g *globalFlags) *cobra.Command {
	rf := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "Show blocks with their batches and transactions",
		Long: `Fetch the /blocks endpoint and print each block, newest first, with every
batch, transaction and decoded payload. The genesis block is hidden unless
--show-genesis is set.

Examples:
  viewer blocks --url http://localhost:8008
  viewer blocks --file blocks.json --full-ids
  viewer blocks --limit 10 --format table
  viewer blocks --scheme json --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlocks(cmd.Context(), cmd, g, rf)
		},
	}

	rf.register(cmd.Flags(), true)
	rf.registerStart(cmd.Flags(), source.EndpointBlocks)
	return cmd
}

func runBlocks(ctx context.Context, cmd *cobra.Command, g *globalFlags, rf *renderFlags) error {
	s, err := newSession(cmd, g, rf)
	if err != nil {
		return err
	}

	data, err := fetchBlocks(ctx, s.src)
	if err != nil {
		return err
	}
	if err := s.printBlocks(data); err != nil {
		return err
	}

	if s.report {
		report, err := output.BuildBlocksReport(data, s.opts)
		if err != nil {
			return err
		}
		return s.writeReport(cmd, "blocks", report)
	}
	return nil
}

func fetchBlocks(ctx context.Context, src source.Source) (*ledger.BlockData, error) {
	raw, err := src.Fetch(ctx, source.EndpointBlocks)
	if err != nil {
		return nil, err
	}
	return ledger.ParseBlocks(raw)
}

func (s *session) printBlocks(data *ledger.BlockData) error {
	switch s.format {
	case formatJSON:
		report, err := output.BuildBlocksReport(data, s.opts)
		if err != nil {
			return err
		}
		return output.RenderJSON(s.out, report)
	case formatTable:
		return output.RenderBlocksTable(s.out, data, s.opts, s.colorized)
	default:
		lines, err := output.RenderBlocks(data, s.opts, s.colorized)
		if err != nil {
			return fmt.Errorf("failed to render blocks: %w", err)
		}
		return output.WriteLines(s.out, lines)
	}
}
