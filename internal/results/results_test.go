package results

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildstyl3r/epacs/internal/integrate"
)

func TestWriteFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Rows{
		W:         []float64{10., 12.5},
		Elastic:   []float64{123.456789012, 0.5},
		Inelastic: []float64{1e-3, 0},
	}))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "# W_Value Elastic Inelastic", lines[0])
	assert.Equal(t, "1.00000000e+01\t1.23456789e+02\t1.00000000e-03", lines[1])
	assert.Equal(t, "1.25000000e+01\t5.00000000e-01\t0.00000000e+00", lines[2])
}

func TestRoundTripWithinWrittenPrecision(t *testing.T) {
	rows := Rows{
		W:         []float64{10., 10.0471285480509, 11.23, 999.999},
		Elastic:   []float64{math.Pi * 100, 1. / 3., 2.718281828459045e-5, 1e-300},
		Inelastic: []float64{math.Sqrt2, 6.02214076e23, 0, 7.7777777777e-9},
	}
	path := filepath.Join(t.TempDir(), "output_values_mu.txt")
	require.NoError(t, Save(path, rows))

	back, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(rows, back, cmpopts.EquateApprox(1e-8, 0)); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRejectsBadRows(t *testing.T) {
	_, err := Read(strings.NewReader("# W_Value Elastic Inelastic\n1e1\t2e0\n"))
	require.Error(t, err)
	_, err = Read(strings.NewReader("1e1\tabc\t2e0\n"))
	require.Error(t, err)
}

func TestFromTails(t *testing.T) {
	el := integrate.Tail{WStart: []float64{1, 2}, Integral: []float64{3, 4}}
	inel := integrate.Tail{WStart: []float64{1, 2}, Integral: []float64{5, 6}}
	rows, err := FromTails(el, inel)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6}, rows.Inelastic)

	_, err = FromTails(el, integrate.Tail{WStart: []float64{1}, Integral: []float64{5}})
	require.Error(t, err)
	_, err = FromTails(el, integrate.Tail{WStart: []float64{1, 3}, Integral: []float64{5, 6}})
	require.Error(t, err)
}

func TestWriteRejectsRaggedColumns(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Rows{W: []float64{1, 2}, Elastic: []float64{1}, Inelastic: []float64{1, 2}})
	require.Error(t, err)
}
