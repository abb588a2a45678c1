package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wildstyl3r/epacs/internal/constants"
	"github.com/wildstyl3r/epacs/internal/flux"
	"github.com/wildstyl3r/epacs/internal/results"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Inspect and build binary photon flux grids",
}

var gridInfoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Print the header and range of a grid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := flux.LoadGrid(args[0])
		if err != nil {
			return err
		}
		lo, hi := g.Range()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "version:     %s\n", g.Version)
		fmt.Fprintf(out, "beams:       %g GeV, %g GeV\n", g.Eb1, g.Eb2)
		fmt.Fprintf(out, "Q² max:      %g GeV², %g GeV²\n", g.Q2Max1, g.Q2Max2)
		fmt.Fprintf(out, "fragmenting: %t\n", g.Fragmenting)
		fmt.Fprintf(out, "parton:      %d\n", g.PartonPdgId)
		fmt.Fprintf(out, "nodes:       %d in [%g, %g] GeV\n", len(g.W), lo, hi)
		return nil
	},
}

var gridDumpCmd = &cobra.Command{
	Use:   "dump FILE",
	Short: "Print the nodes of a grid as text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := flux.LoadGrid(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "# W flux")
		for i := range g.W {
			fmt.Fprintf(out, "%s\t%s\n", results.FormatFloat(g.W[i]), results.FormatFloat(g.Flux[i]))
		}
		return nil
	},
}

var (
	buildFlux   string
	buildHeader flux.Header
)

var gridBuildCmd = &cobra.Command{
	Use:   "build TABLE OUT",
	Short: "Write one flux column of a table as a binary grid",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var elastic bool
		switch buildFlux {
		case "elastic":
			elastic = true
		case "inelastic":
		default:
			return fmt.Errorf("--flux must be elastic or inelastic, got %q", buildFlux)
		}
		table, err := flux.Load(args[0])
		if err != nil {
			return err
		}
		g := table.ToGrid(elastic, buildHeader)
		if err := g.Save(args[1]); err != nil {
			return err
		}
		logger.Info("grid written",
			zap.String("path", args[1]),
			zap.String("flux", buildFlux),
			zap.Int("nodes", len(g.W)))
		return nil
	},
}

func init() {
	f := gridBuildCmd.Flags()
	f.StringVar(&buildFlux, "flux", "elastic", "column to store: elastic or inelastic")
	f.StringVar(&buildHeader.Version, "version", "epacs", "generator version tag, up to 9 bytes")
	f.Float64Var(&buildHeader.Eb1, "eb1", 0, "first beam energy [GeV]")
	f.Float64Var(&buildHeader.Eb2, "eb2", 0, "second beam energy [GeV]")
	f.Float64Var(&buildHeader.Q2Max1, "q2max1", 0, "first beam virtuality cut [GeV²]")
	f.Float64Var(&buildHeader.Q2Max2, "q2max2", 0, "second beam virtuality cut [GeV²]")
	f.BoolVar(&buildHeader.Fragmenting, "fragmenting", false, "the second beam dissociates")
	f.IntVar(&buildHeader.PartonPdgId, "pdg", constants.PhotonPdgId, "parton PDG id")

	gridCmd.AddCommand(gridInfoCmd, gridDumpCmd, gridBuildCmd)
}
