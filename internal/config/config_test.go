package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestScenarioDefaults(t *testing.T) {
	path := writeConfig(t, `
[Scenarios.only]
FluxTable = "values/wgrid.yaml"
`)
	c, err := LoadConfig(path)
	require.NoError(t, err)
	p, err := c.Scenario("only")
	require.NoError(t, err)
	assert.Equal(t, "muon", p.Particle)
	assert.Equal(t, "Hamzeh", p.Formula)
	assert.Equal(t, "pb", p.Units)
	assert.Equal(t, 303, p.Points)
	assert.True(t, p.Plot)
	assert.False(t, p.MakeDir)
	assert.Equal(t, []float64{10., 1000.}, p.XRange)
	assert.Equal(t, 1., p.UnitFactor())
	assert.Equal(t, filepath.Join(filepath.Dir(path), "values", "wgrid.yaml"), p.FluxTable)
	assert.False(t, p.UsesGrids())
	assert.Equal(t, filepath.Dir(path), c.OutputDir)
}

func TestScenarioInheritsGlobals(t *testing.T) {
	path := writeConfig(t, `
OutputDir = "out"
Particle = "electron"
Units = "fb"
Points = 100
FluxTable = "shared.txt"

[Scenarios.a]
Formula = "Krzysztof"

[Scenarios.b]
Particle = "tau"
Points = 0
Plot = false

[Scenarios.c]
ElasticGrid = "el.grid"
InelasticGrid = "inel.grid"
`)
	c, err := LoadConfig(path)
	require.NoError(t, err)
	dir := filepath.Dir(path)
	assert.Equal(t, filepath.Join(dir, "out"), c.OutputDir)

	a, err := c.Scenario("a")
	require.NoError(t, err)
	assert.Equal(t, "electron", a.Particle)
	assert.Equal(t, "Krzysztof", a.Formula)
	assert.Equal(t, 100, a.Points)
	assert.Equal(t, 1e3, a.UnitFactor())
	assert.Equal(t, filepath.Join(dir, "shared.txt"), a.FluxTable)
	assert.True(t, a.IsDefined("Particle"))
	assert.True(t, a.IsDefined("Formula"))
	assert.False(t, a.IsDefined("ElasticGrid"))

	b, err := c.Scenario("b")
	require.NoError(t, err)
	assert.Equal(t, "tau", b.Particle)
	assert.Equal(t, 0, b.Points)
	assert.False(t, b.Plot)

	cc, err := c.Scenario("c")
	require.NoError(t, err)
	assert.True(t, cc.UsesGrids())
	assert.Empty(t, cc.FluxTable)
	assert.Equal(t, filepath.Join(dir, "el.grid"), cc.ElasticGrid)
}

func TestScenarioConflictsAndMissingDependencies(t *testing.T) {
	path := writeConfig(t, `
[Scenarios.both]
FluxTable = "t.txt"
ElasticGrid = "el.grid"
InelasticGrid = "inel.grid"

[Scenarios.half]
ElasticGrid = "el.grid"

[Scenarios.none]
Particle = "muon"

[Scenarios.units]
FluxTable = "t.txt"
Units = "barn"

[Scenarios.ranges]
FluxTable = "t.txt"
XRange = [100.0, 10.0]
`)
	c, err := LoadConfig(path)
	require.NoError(t, err)
	for _, name := range []string{"both", "half", "none", "units", "ranges"} {
		_, err := c.Scenario(name)
		assert.Error(t, err, name)
	}
	_, err = c.Scenario("missing")
	assert.Error(t, err)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `OutputDir = "x"`))
	require.ErrorIs(t, err, ErrNoScenarios)

	_, err = LoadConfig(writeConfig(t, "[Scenarios.a]\nFluxTable = \"t.txt\"\nTypo = 1\n"))
	require.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestScenarioNamesAreNatural(t *testing.T) {
	path := writeConfig(t, `
FluxTable = "t.txt"
[Scenarios.run10]
[Scenarios.run2]
[Scenarios.run1]
`)
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"run1", "run2", "run10"}, c.ScenarioNames())
}

func TestConvert(t *testing.T) {
	v, err := Convert([]float64{1., 2.}, "fb")
	require.NoError(t, err)
	assert.Equal(t, []float64{1e3, 2e3}, v)
	_, err = Convert([]float64{1.}, "barn")
	require.Error(t, err)
	assert.Equal(t, "μb", UnitLabel("ub"))
}
