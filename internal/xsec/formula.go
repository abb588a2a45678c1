package xsec

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
)

// Formula returns the W-dependent part of sigma(γγ→l⁺l⁻) in GeV^-2, i.e. the
// cross-section without the 4π α² (ħc)² prefactor. It is only called above
// threshold, so 0 < beta < 1.
type Formula func(w, mass, beta float64) float64

var Formulas = map[string]Formula{
	"Hamzeh":    hamzeh,
	"muon":      muon,
	"Krzysztof": krzysztof,
}

func FormulaByName(name string) (Formula, string, error) {
	for key, f := range Formulas {
		if strings.EqualFold(key, name) {
			return f, key, nil
		}
	}
	return nil, "", fmt.Errorf("unknown formula %q, expected one of %v", name, slices.Sorted(maps.Keys(Formulas)))
}

// ln((1+β)/(1-β)) written through 1-β = x/(1+β), x = 4m²/W², so that it stays
// finite when β rounds to 1 at large W.
func logTerm(beta, x float64) float64 {
	return math.Log((1. + beta) * (1. + beta) / x)
}

// Phys. Rep. 364 (2002) 359, eq. 62
func hamzeh(w, mass, beta float64) float64 {
	w2 := w * w
	beta2 := beta * beta
	x := 4. * mass * mass / w2
	return beta / w2 * ((3.-beta2*beta2)/(2.*beta)*logTerm(beta, x) - 2. + beta2)
}

func muon(w, mass, beta float64) float64 {
	w2 := w * w
	m2 := mass * mass
	x := 4. * m2 / w2
	return ((1.+4.*m2/w2-8.*m2*m2/(w2*w2))*logTerm(beta, x) - beta*(1.+4.*m2/w2)) / w2
}

// same bracket as muon, expanded in the mass ratio x = 4m²/W²
func krzysztof(w, mass, beta float64) float64 {
	w2 := w * w
	x := 4. * mass * mass / w2
	return ((1.+x-0.5*x*x)*logTerm(beta, x) - beta*(1.+x)) / w2
}
