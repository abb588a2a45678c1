package config

import (
	"fmt"
	"slices"

	"github.com/wildstyl3r/epacs/internal/utils"
)

// cross-section units, value of 1 pb in each
var unitFromPb = map[string]float64{
	"ab": 1e6,
	"fb": 1e3,
	"pb": 1,
	"nb": 1e-3,
	"ub": 1e-6,
	"mb": 1e-9,
}

var unitLatex = map[string]string{
	"ab": "ab",
	"fb": "fb",
	"pb": "pb",
	"nb": "nb",
	"ub": "μb",
	"mb": "mb",
}

func UnitFactor(unit string) (float64, error) {
	if f, some := unitFromPb[unit]; some {
		return f, nil
	}
	return 0, fmt.Errorf("unknown cross-section unit %q, expected one of %v", unit, utils.SortedKeys(unitFromPb))
}

func UnitLabel(unit string) string {
	if l, some := unitLatex[unit]; some {
		return l
	}
	return unit
}

// Convert rescales values given in pb.
func Convert(values []float64, unit string) ([]float64, error) {
	f, err := UnitFactor(unit)
	if err != nil {
		return nil, err
	}
	converted := slices.Clone(values)
	for i := range converted {
		converted[i] *= f
	}
	return converted, nil
}
