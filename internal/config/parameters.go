package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/wildstyl3r/epacs/internal/utils"
)

var ErrNoScenarios = errors.New("no scenarios provided")

type Config struct {
	OutputDir string
	Scenarios map[string]ScenarioParameters
	ScenarioParameters

	path string
	meta toml.MetaData
}

type ScenarioParameters struct {
	FluxTable     string // .txt/.dat or .yaml table with W, inelastic and elastic columns
	ElasticGrid   string // CepGen binary grids, used together instead of FluxTable
	InelasticGrid string

	Particle string
	Formula  string
	AlphaEM  float64
	Units    string

	Points       int // leading points kept in the results, 0 keeps all
	MakeDir      bool
	Plot         bool
	Spectrum     bool
	SpectrumBins int
	XRange       []float64 // [GeV]
	YRange       []float64 // in Units

	// legend metadata, override the values found in the flux table
	MNMax  float64 // [GeV]
	Q2eMax float64 // [GeV^2]
	Q2pMax float64 // [GeV^2]

	_unitFactor float64
	_defined    map[string]struct{}
}

func (p *ScenarioParameters) UnitFactor() float64 {
	return p._unitFactor
}

// IsDefined reports whether the field was set by the scenario or inherited
// from the global section, as opposed to left empty or defaulted.
func (p *ScenarioParameters) IsDefined(field string) bool {
	_, some := p._defined[field]
	return some
}

func (p *ScenarioParameters) UsesGrids() bool {
	return p.FluxTable == ""
}

var defaultValues = map[string]any{
	"Particle":     "muon",
	"Formula":      "Hamzeh",
	"Units":        "pb",
	"Points":       303,
	"MakeDir":      false,
	"Plot":         true,
	"Spectrum":     false,
	"SpectrumBins": 25,
	"XRange":       []float64{10., 1000.},
	"YRange":       []float64{1e-3, 1e3},
}

var fieldsXor = map[string][]string{
	"FluxTable":     {"ElasticGrid", "InelasticGrid"},
	"ElasticGrid":   {"FluxTable"},
	"InelasticGrid": {"FluxTable"},
}

var fieldsAnd = map[string][]string{
	"ElasticGrid":   {"InelasticGrid"},
	"InelasticGrid": {"ElasticGrid"},
}

var pathFields = []string{"FluxTable", "ElasticGrid", "InelasticGrid"}

func LoadConfig(configFileName string) (*Config, error) {
	path := strings.TrimSuffix(configFileName, ".toml") + ".toml"
	var config Config
	meta, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown keys %v", path, undecoded)
	}
	if len(config.Scenarios) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoScenarios)
	}
	config.path = path
	config.meta = meta
	if config.OutputDir == "" {
		config.OutputDir = filepath.Dir(path)
	} else {
		config.OutputDir = utils.ResolvePath(path, config.OutputDir)
	}
	return &config, nil
}

func (c *Config) Path() string {
	return c.path
}

// ScenarioNames lists the scenarios in natural order.
func (c *Config) ScenarioNames() []string {
	return utils.SortedKeys(c.Scenarios)
}

/*
field value priority:
1. scenario
2. global
3. default
a field set by the scenario also blocks inheriting its xor alternatives
*/

// Scenario returns the unified parameters of the named scenario.
func (c *Config) Scenario(name string) (ScenarioParameters, error) {
	local, some := c.Scenarios[name]
	if !some {
		return ScenarioParameters{}, fmt.Errorf("unknown scenario %q", name)
	}
	local._defined = map[string]struct{}{}

	localReflect := reflect.ValueOf(&local).Elem()
	globalReflect := reflect.ValueOf(&c.ScenarioParameters).Elem()
	fields := reflect.TypeOf(local)

	exclude := map[string]struct{}{}
	for i := range fields.NumField() {
		field := fields.Field(i).Name
		if fields.Field(i).IsExported() && c.meta.IsDefined("Scenarios", name, field) {
			local._defined[field] = struct{}{}
			for _, alternative := range fieldsXor[field] {
				exclude[alternative] = struct{}{}
			}
		}
	}

	for i := range fields.NumField() {
		field := fields.Field(i).Name
		if !fields.Field(i).IsExported() || local.IsDefined(field) {
			continue
		}
		if _, excluded := exclude[field]; excluded {
			continue
		}
		if c.meta.IsDefined(field) {
			localReflect.Field(i).Set(globalReflect.Field(i))
			local._defined[field] = struct{}{}
		} else if value, some := defaultValues[field]; some {
			localReflect.Field(i).Set(reflect.ValueOf(value))
		}
	}
	// copy slices so scenarios do not share backing arrays with the defaults
	local.XRange = slices.Clone(local.XRange)
	local.YRange = slices.Clone(local.YRange)

	if err := local.check(); err != nil {
		return ScenarioParameters{}, fmt.Errorf("scenario %s: %w", name, err)
	}
	for _, field := range pathFields {
		value := localReflect.FieldByName(field)
		value.SetString(utils.ResolvePath(c.path, value.String()))
	}
	return local, nil
}

func (p *ScenarioParameters) check() error {
	var problems []string
	for field, conflicts := range fieldsXor {
		if !p.IsDefined(field) {
			continue
		}
		for _, conflict := range conflicts {
			if p.IsDefined(conflict) {
				problems = append(problems, fmt.Sprintf("%s conflicts with %s", field, conflict))
			}
		}
	}
	for field, requirements := range fieldsAnd {
		if !p.IsDefined(field) {
			continue
		}
		for _, requirement := range requirements {
			if !p.IsDefined(requirement) {
				problems = append(problems, fmt.Sprintf("%s requires %s", field, requirement))
			}
		}
	}
	if p.FluxTable == "" && (p.ElasticGrid == "" || p.InelasticGrid == "") {
		problems = append(problems, "either FluxTable or ElasticGrid and InelasticGrid must be given")
	}
	if p.Points < 0 {
		problems = append(problems, fmt.Sprintf("Points must not be negative, got %d", p.Points))
	}
	if p.SpectrumBins <= 0 {
		problems = append(problems, fmt.Sprintf("SpectrumBins must be positive, got %d", p.SpectrumBins))
	}
	for name, r := range map[string][]float64{"XRange": p.XRange, "YRange": p.YRange} {
		if len(r) != 2 || !(0 < r[0] && r[0] < r[1]) {
			problems = append(problems, fmt.Sprintf("%s must be two increasing positive numbers, got %v", name, r))
		}
	}
	factor, err := UnitFactor(p.Units)
	if err != nil {
		problems = append(problems, err.Error())
	}
	p._unitFactor = factor
	if len(problems) > 0 {
		slices.Sort(problems)
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
