package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wildstyl3r/epacs/internal/config"
	"github.com/wildstyl3r/epacs/internal/constants"
	"github.com/wildstyl3r/epacs/internal/results"
	"github.com/wildstyl3r/epacs/internal/xsec"
)

var (
	xsecParticle string
	xsecFormula  string
	xsecUnits    string
	xsecAlpha    float64
)

var xsecCmd = &cobra.Command{
	Use:   "xsec W...",
	Short: "Print σ(γγ→l⁺l⁻) at the given energies [GeV]",
	Args:  cobra.MinimumNArgs(1),
	RunE:  printCrossSections,
}

func init() {
	xsecCmd.Flags().StringVarP(&xsecParticle, "particle", "p", "muon", "produced lepton")
	xsecCmd.Flags().StringVarP(&xsecFormula, "formula", "f", "Hamzeh", "cross-section formula")
	xsecCmd.Flags().StringVarP(&xsecUnits, "units", "u", "pb", "output units")
	xsecCmd.Flags().Float64Var(&xsecAlpha, "alpha", constants.AlphaEM, "fine-structure constant")
}

func printCrossSections(cmd *cobra.Command, args []string) error {
	model, err := xsec.NewModel(xsecParticle, xsecFormula, xsecAlpha)
	if err != nil {
		return err
	}
	ws := make([]float64, len(args))
	for i, arg := range args {
		if ws[i], err = strconv.ParseFloat(arg, 64); err != nil {
			return fmt.Errorf("W #%d: %w", i+1, err)
		}
	}
	values, err := config.Convert(model.EvalSlice(ws), xsecUnits)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# %s, %s, threshold %s GeV\n", model.Lepton.Process(), model.FormulaName, results.FormatFloat(model.Threshold()))
	for i := range ws {
		fmt.Fprintf(out, "%s\t%s\n", results.FormatFloat(ws[i]), results.FormatFloat(values[i]))
	}
	return nil
}
