// Package xsec evaluates closed-form QED cross-sections for two-photon
// production of a lepton pair as a function of the γγ invariant mass W.
package xsec

import (
	"math"

	"github.com/wildstyl3r/epacs/internal/constants"
)

type Model struct {
	Lepton      Lepton
	FormulaName string
	Alpha       float64

	formula   Formula
	prefactor float64 // 4π α² (ħc)² [pb GeV^2]
}

// NewModel builds a cross-section model for the named lepton and formula.
// A non-positive alpha selects constants.AlphaEM.
func NewModel(lepton, formula string, alpha float64) (*Model, error) {
	l, err := LeptonByName(lepton)
	if err != nil {
		return nil, err
	}
	f, name, err := FormulaByName(formula)
	if err != nil {
		return nil, err
	}
	return newModel(l, name, f, alpha), nil
}

func newModel(l Lepton, name string, f Formula, alpha float64) *Model {
	if alpha <= 0 {
		alpha = constants.AlphaEM
	}
	return &Model{
		Lepton:      l,
		FormulaName: name,
		Alpha:       alpha,
		formula:     f,
		prefactor:   4. * math.Pi * alpha * alpha * constants.HbarC2 * constants.MbToPb,
	}
}

func (m *Model) Threshold() float64 {
	return m.Lepton.Threshold()
}

// Beta returns the lepton velocity in the pair rest frame and false when W
// is at or below threshold.
func (m *Model) Beta(w float64) (float64, bool) {
	if !(w > m.Threshold()) {
		return 0, false
	}
	radicand := 1. - 4.*m.Lepton.Mass*m.Lepton.Mass/(w*w)
	if radicand <= 0 {
		return 0, false
	}
	return math.Sqrt(radicand), true
}

// At returns sigma(W) in pb, exactly 0 at or below threshold.
func (m *Model) At(w float64) float64 {
	beta, ok := m.Beta(w)
	if !ok {
		return 0
	}
	cs := m.prefactor * m.formula(w, m.Lepton.Mass, beta)
	if math.IsNaN(cs) || cs < 0 {
		return 0
	}
	return cs
}

func (m *Model) EvalSlice(ws []float64) []float64 {
	cs := make([]float64, len(ws))
	for i := range ws {
		cs[i] = m.At(ws[i])
	}
	return cs
}
