package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmagro/ledger-viewer/internal/ledger"
	"github.com/dmagro/ledger-viewer/internal/output"
)

func snapshotCmd(g *globalFlags) *cobra.Command {
	rf := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Show blocks and state of a node in one report",
		Long: `Fetch /blocks and /state concurrently and print both listings.

Examples:
  viewer snapshot --url http://localhost:8008
  viewer snapshot --node local --format json --report`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd.Context(), cmd, g, rf)
		},
	}

	rf.register(cmd.Flags(), false)
	return cmd
}

type snapshotReport struct {
	Blocks *output.BlocksReport `json:"blocks"`
	State  *output.StateReport  `json:"state"`
}

func runSnapshot(ctx context.Context, cmd *cobra.Command, g *globalFlags, rf *renderFlags) error {
	s, err := newSession(cmd, g, rf)
	if err != nil {
		return err
	}

	var (
		blocks *ledger.BlockData
		state  *ledger.StateData
	)
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		blocks, err = fetchBlocks(gctx, s.src)
		return err
	})
	eg.Go(func() error {
		var err error
		state, err = fetchState(gctx, s.src)
		return err
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	if s.format == formatJSON || s.report {
		report := &snapshotReport{}
		if report.Blocks, err = output.BuildBlocksReport(blocks, s.opts); err != nil {
			return err
		}
		if report.State, err = output.BuildStateReport(state, s.opts); err != nil {
			return err
		}
		if s.format == formatJSON {
			if err := output.RenderJSON(s.out, report); err != nil {
				return err
			}
		}
		if err := s.writeReport(cmd, "snapshot", report); err != nil {
			return err
		}
		if s.format == formatJSON {
			return nil
		}
	}

	if err := s.printBlocks(blocks); err != nil {
		return err
	}
	fmt.Fprintln(s.out)
	return s.printState(state)
}
