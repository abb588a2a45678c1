package xsec

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/wildstyl3r/epacs/internal/constants"
)

type Lepton struct {
	Name   string
	Symbol string
	PdgId  int
	Mass   float64 // [GeV]
}

var Leptons = map[string]Lepton{
	"electron": {Name: "electron", Symbol: "e", PdgId: constants.ElectronPdgId, Mass: constants.ElectronMass},
	"muon":     {Name: "muon", Symbol: "μ", PdgId: constants.MuonPdgId, Mass: constants.MuonMass},
	"tau":      {Name: "tau", Symbol: "τ", PdgId: constants.TauPdgId, Mass: constants.TauMass},
}

func LeptonByName(name string) (Lepton, error) {
	if l, some := Leptons[strings.ToLower(name)]; some {
		return l, nil
	}
	names := slices.Sorted(maps.Keys(Leptons))
	return Lepton{}, fmt.Errorf("unknown lepton %q, expected one of %v", name, names)
}

// Threshold is the pair production threshold 2m.
func (l Lepton) Threshold() float64 {
	return 2. * l.Mass
}

func (l Lepton) Process() string {
	return "γγ→" + l.Symbol + "⁺" + l.Symbol + "⁻"
}
