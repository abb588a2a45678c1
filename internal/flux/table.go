// Package flux loads two-photon flux tables: an energy grid with the
// elastic and inelastic flux weights defined on it.
package flux

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wildstyl3r/epacs/internal/integrate"
	"github.com/wildstyl3r/epacs/internal/utils"
)

type Table struct {
	W         []float64 `yaml:"w"`
	Inelastic []float64 `yaml:"inelastic"`
	Elastic   []float64 `yaml:"elastic"`

	// label metadata, not used in the integration
	MNMax  float64 `yaml:"mn_max"`  // [GeV]
	Q2eMax float64 `yaml:"q2e_max"` // [GeV^2]
	Q2pMax float64 `yaml:"q2p_max"` // [GeV^2]

	Source string `yaml:"-"`
}

// Load picks the reader from the file extension: .yaml/.yml or a
// whitespace separated "W inelastic elastic" text table otherwise.
func Load(path string) (*Table, error) {
	var (
		t   *Table
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		t, err = LoadYAML(path)
	case ".grid":
		return nil, fmt.Errorf("%s: a grid holds a single flux, use FromGrids", path)
	default:
		t, err = LoadText(path)
	}
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func LoadText(path string) (*Table, error) {
	rows, err := utils.ReadFloatColumns(path, 3)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t := &Table{
		W:         make([]float64, len(rows)),
		Inelastic: make([]float64, len(rows)),
		Elastic:   make([]float64, len(rows)),
		Source:    path,
	}
	for i := range rows {
		t.W[i], t.Inelastic[i], t.Elastic[i] = rows[i][0], rows[i][1], rows[i][2]
	}
	return t, nil
}

func LoadYAML(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t.Source = path
	return &t, nil
}

// FromGrids combines two single-flux grids. The inelastic flux is resampled
// onto the elastic grid nodes unless both grids share them already.
func FromGrids(elastic, inelastic *Grid) (*Table, error) {
	if err := integrate.Validate(elastic.W, elastic.Flux); err != nil {
		return nil, fmt.Errorf("elastic grid: %w", err)
	}
	if err := integrate.Validate(inelastic.W, inelastic.Flux); err != nil {
		return nil, fmt.Errorf("inelastic grid: %w", err)
	}
	t := &Table{
		W:       slices.Clone(elastic.W),
		Elastic: slices.Clone(elastic.Flux),
		Q2eMax:  elastic.Q2Max1,
		Q2pMax:  inelastic.Q2Max2,
	}
	if slices.Equal(elastic.W, inelastic.W) {
		t.Inelastic = slices.Clone(inelastic.Flux)
	} else {
		t.Inelastic = make([]float64, len(t.W))
		for i, w := range t.W {
			t.Inelastic[i] = inelastic.At(w)
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) Validate() error {
	if err := integrate.Validate(t.W, t.Elastic); err != nil {
		return fmt.Errorf("elastic flux: %w", err)
	}
	if err := integrate.Validate(t.W, t.Inelastic); err != nil {
		return fmt.Errorf("inelastic flux: %w", err)
	}
	return nil
}

// ToGrid extracts one flux column as a grid with the given header.
func (t *Table) ToGrid(elastic bool, header Header) *Grid {
	g := &Grid{Header: header, W: slices.Clone(t.W)}
	if elastic {
		g.Flux = slices.Clone(t.Elastic)
	} else {
		g.Flux = slices.Clone(t.Inelastic)
	}
	return g
}
