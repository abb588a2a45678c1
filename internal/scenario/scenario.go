// Package scenario runs one configured computation: load the fluxes, fold
// them with the cross-section, store the tails and draw them.
package scenario

import (
	"fmt"
	"math"
	"time"

	"go-hep.org/x/hep/hbook"
	"go.uber.org/zap"

	"github.com/wildstyl3r/epacs/internal/config"
	"github.com/wildstyl3r/epacs/internal/figure"
	"github.com/wildstyl3r/epacs/internal/flux"
	"github.com/wildstyl3r/epacs/internal/integrate"
	"github.com/wildstyl3r/epacs/internal/results"
	"github.com/wildstyl3r/epacs/internal/utils"
	"github.com/wildstyl3r/epacs/internal/xsec"
)

type Summary struct {
	Scenario       string
	Points         int
	TotalElastic   float64 // over the whole grid, in the configured units
	TotalInelastic float64
	Output         string
	Figures        []string
}

func LoadTable(p config.ScenarioParameters) (*flux.Table, error) {
	var (
		table *flux.Table
		err   error
	)
	if p.UsesGrids() {
		elastic, err := flux.LoadGrid(p.ElasticGrid)
		if err != nil {
			return nil, err
		}
		inelastic, err := flux.LoadGrid(p.InelasticGrid)
		if err != nil {
			return nil, err
		}
		table, err = flux.FromGrids(elastic, inelastic)
		if err != nil {
			return nil, fmt.Errorf("%s, %s: %w", p.ElasticGrid, p.InelasticGrid, err)
		}
	} else {
		table, err = flux.Load(p.FluxTable)
		if err != nil {
			return nil, err
		}
	}
	if p.IsDefined("MNMax") {
		table.MNMax = p.MNMax
	}
	if p.IsDefined("Q2eMax") {
		table.Q2eMax = p.Q2eMax
	}
	if p.IsDefined("Q2pMax") {
		table.Q2pMax = p.Q2pMax
	}
	return table, nil
}

func Run(name string, p config.ScenarioParameters, outputDir string, logger *zap.Logger) (Summary, error) {
	startTime := time.Now()
	logger = logger.With(zap.String("scenario", name))
	summary := Summary{Scenario: name}

	model, err := xsec.NewModel(p.Particle, p.Formula, p.AlphaEM)
	if err != nil {
		return summary, err
	}
	table, err := LoadTable(p)
	if err != nil {
		return summary, err
	}
	logger.Debug("flux table loaded",
		zap.Int("nodes", len(table.W)),
		zap.Float64("wMin", table.W[0]),
		zap.Float64("wMax", table.W[len(table.W)-1]),
		zap.Float64("threshold", model.Threshold()))

	elastic, err := integrate.Cumulative(table.W, table.Elastic, model)
	if err != nil {
		return summary, fmt.Errorf("elastic flux: %w", err)
	}
	inelastic, err := integrate.Cumulative(table.W, table.Inelastic, model)
	if err != nil {
		return summary, fmt.Errorf("inelastic flux: %w", err)
	}
	elastic = elastic.Scaled(p.UnitFactor())
	inelastic = inelastic.Scaled(p.UnitFactor())
	summary.TotalElastic = elastic.Integral[0]
	summary.TotalInelastic = inelastic.Integral[0]

	if total, err := integrate.Total(table.W, table.Elastic, model); err == nil {
		total *= p.UnitFactor()
		if math.Abs(total-summary.TotalElastic) > 1e-9*math.Abs(total) {
			logger.Warn("tail and total integral disagree", zap.Float64("tail", summary.TotalElastic), zap.Float64("total", total))
		}
	}

	rows, err := results.FromTails(elastic.Truncate(p.Points), inelastic.Truncate(p.Points))
	if err != nil {
		return summary, err
	}
	summary.Points = rows.Len()
	summary.Output, err = save(p.MakeDir, outputDir, name, "output_values_"+model.Lepton.Name, rows)
	if err != nil {
		return summary, err
	}
	logger.Info("results saved", zap.String("path", summary.Output), zap.Int("points", summary.Points))

	if p.Plot {
		files, err := drawTails(name, p, outputDir, model, table, rows)
		if err != nil {
			return summary, err
		}
		summary.Figures = append(summary.Figures, files...)
	}
	if p.Spectrum {
		files, err := drawSpectrum(name, p, outputDir, model, table, logger)
		if err != nil {
			return summary, err
		}
		summary.Figures = append(summary.Figures, files...)
	}
	for _, f := range summary.Figures {
		logger.Info("figure saved", zap.String("path", f))
	}

	logger.Info("scenario done",
		zap.String("process", model.Lepton.Process()),
		zap.String("formula", model.FormulaName),
		zap.Float64("elastic", summary.TotalElastic),
		zap.Float64("inelastic", summary.TotalInelastic),
		zap.String("units", p.Units),
		zap.Duration("elapsed", time.Since(startTime)))
	return summary, nil
}

// save also creates the directories the figures of the scenario go to.
func save(makeDir bool, outputDir, subpath, name string, rows results.Rows) (string, error) {
	path, err := utils.MakeOutputDir(makeDir, outputDir, subpath, name, ".txt")
	if err != nil {
		return "", err
	}
	if err := results.Save(path, rows); err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return path, nil
}

func inelasticLabel(t *flux.Table) string {
	return fmt.Sprintf("M_N < %g GeV (Q²_p < %g GeV²)", t.MNMax, t.Q2pMax)
}

func titleLabel(t *flux.Table) string {
	if t.Q2eMax <= 0 {
		return ""
	}
	return fmt.Sprintf("Q²_e < 10^%g GeV²", math.Log10(t.Q2eMax))
}

func yLabel(model *xsec.Model, unit string) string {
	l := model.Lepton.Symbol
	return fmt.Sprintf("σ(ep→e(γγ→%s⁺%s⁻)p(*)) (W > W₀) [%s]", l, l, config.UnitLabel(unit))
}

func drawTails(name string, p config.ScenarioParameters, outputDir string, model *xsec.Model, table *flux.Table, rows results.Rows) ([]string, error) {
	ll := figure.LogLog{
		Title:  titleLabel(table),
		XLabel: "W₀ [GeV]",
		YLabel: yLabel(model, p.Units),
		XRange: [2]float64{p.XRange[0], p.XRange[1]},
		YRange: [2]float64{p.YRange[0], p.YRange[1]},
		Curves: []figure.Curve{
			{Label: "Elastic", X: rows.W, Y: rows.Elastic},
			{Label: inelasticLabel(table), X: rows.W, Y: rows.Inelastic, Dotted: true},
		},
	}
	plt, err := ll.Plot()
	if err != nil {
		return nil, err
	}
	base := "cs_" + model.Lepton.Name
	files := []string{
		utils.OutputPath(p.MakeDir, outputDir, name, base, ".pdf"),
		utils.OutputPath(p.MakeDir, outputDir, name, base, ".png"),
	}
	return files, figure.Save(plt, files...)
}

func drawSpectrum(name string, p config.ScenarioParameters, outputDir string, model *xsec.Model, table *flux.Table, logger *zap.Logger) ([]string, error) {
	edges := figure.LogEdges(p.XRange[0], p.XRange[1], p.SpectrumBins)
	fluxes := map[string][]float64{"Elastic": table.Elastic, "Inelastic": table.Inelastic}
	order := []string{"Elastic", "Inelastic"}
	histograms := make(map[string]*hbook.H1D, len(fluxes))
	for _, label := range order {
		areas, err := integrate.Trapezoids(table.W, fluxes[label], model)
		if err != nil {
			return nil, fmt.Errorf("%s flux: %w", label, err)
		}
		for i := range areas {
			areas[i] *= p.UnitFactor()
		}
		h, err := figure.Spectrum(table.W, areas, edges)
		if err != nil {
			return nil, err
		}
		peak := utils.Argmax(areas)
		logger.Debug("spectrum filled",
			zap.String("flux", label),
			zap.Float64("sum", utils.SumSlice(areas)),
			zap.Float64("peakW", table.W[peak]))
		histograms[label] = h
	}
	plt := figure.SpectrumPlot(titleLabel(table), "W [GeV]",
		fmt.Sprintf("σ(%s) per bin [%s]", model.Lepton.Process(), config.UnitLabel(p.Units)),
		histograms, order)
	files := []string{utils.OutputPath(p.MakeDir, outputDir, name, "spectrum_"+model.Lepton.Name, ".png")}
	return files, figure.Save(plt, files...)
}
