package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmagro/ledger-viewer/internal/ledger"
	"github.com/dmagro/ledger-viewer/internal/output"
	"github.com/dmagro/ledger-viewer/internal/source"
)

func stateCmd(g *globalFlags) *cobra.Command {
	rf := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show state addresses with their decoded data",
		Long: `Fetch the /state endpoint and print each address with its decoded data.
Entries in the settings namespace are hidden unless --show-settings is set.

Examples:
  viewer state --url http://localhost:8008
  viewer state --address 1cf126 --full-ids
  viewer state --file state.json --show-settings`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runState(cmd.Context(), cmd, g, rf)
		},
	}

	rf.register(cmd.Flags(), true)
	rf.registerStart(cmd.Flags(), source.EndpointState)
	cmd.Flags().StringVar(&rf.query.Address, "address", "", "Only addresses starting with this prefix")
	cmd.Flags().BoolVar(&rf.showGenesis, "show-settings", false, "Include settings namespace entries (same as --show-genesis)")
	return cmd
}

func runState(ctx context.Context, cmd *cobra.Command, g *globalFlags, rf *renderFlags) error {
	s, err := newSession(cmd, g, rf)
	if err != nil {
		return err
	}

	data, err := fetchState(ctx, s.src)
	if err != nil {
		return err
	}
	if err := s.printState(data); err != nil {
		return err
	}

	if s.report {
		report, err := output.BuildStateReport(data, s.opts)
		if err != nil {
			return err
		}
		return s.writeReport(cmd, "state", report)
	}
	return nil
}

func fetchState(ctx context.Context, src source.Source) (*ledger.StateData, error) {
	raw, err := src.Fetch(ctx, source.EndpointState)
	if err != nil {
		return nil, err
	}
	return ledger.ParseState(raw)
}

func (s *session) printState(data *ledger.StateData) error {
	switch s.format {
	case formatJSON:
		report, err := output.BuildStateReport(data, s.opts)
		if err != nil {
			return err
		}
		return output.RenderJSON(s.out, report)
	case formatTable:
		return output.RenderStateTable(s.out, data, s.opts, s.colorized)
	default:
		lines, err := output.RenderState(data, s.opts, s.colorized)
		if err != nil {
			return fmt.Errorf("failed to render state: %w", err)
		}
		return output.WriteLines(s.out, lines)
	}
}
