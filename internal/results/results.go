// Package results stores the tail cross-sections of one scenario as a tab
// separated text table.
package results

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/wildstyl3r/epacs/internal/integrate"
)

var Columns = []string{"W_Value", "Elastic", "Inelastic"}

const precision = 8 // digits after the decimal point, %.8e

type Rows struct {
	W         []float64
	Elastic   []float64
	Inelastic []float64
}

// FromTails pairs the elastic and inelastic tails computed on the same grid.
func FromTails(elastic, inelastic integrate.Tail) (Rows, error) {
	if elastic.Len() != inelastic.Len() {
		return Rows{}, fmt.Errorf("elastic tail has %d points, inelastic %d", elastic.Len(), inelastic.Len())
	}
	for i := range elastic.WStart {
		if elastic.WStart[i] != inelastic.WStart[i] {
			return Rows{}, fmt.Errorf("tails differ at point %d: W = %v and %v", i, elastic.WStart[i], inelastic.WStart[i])
		}
	}
	return Rows{W: elastic.WStart, Elastic: elastic.Integral, Inelastic: inelastic.Integral}, nil
}

func (r Rows) Len() int {
	return len(r.W)
}

func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'e', precision, 64)
}

func Write(w io.Writer, rows Rows) error {
	if len(rows.Elastic) != rows.Len() || len(rows.Inelastic) != rows.Len() {
		return fmt.Errorf("columns differ in length: %d, %d, %d", rows.Len(), len(rows.Elastic), len(rows.Inelastic))
	}
	if _, err := fmt.Fprintln(w, "# "+strings.Join(Columns, " ")); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	for i := range rows.W {
		if err := cw.Write([]string{FormatFloat(rows.W[i]), FormatFloat(rows.Elastic[i]), FormatFloat(rows.Inelastic[i])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func Save(path string, rows Rows) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	buffered := bufio.NewWriter(file)
	if err := Write(buffered, rows); err != nil {
		file.Close()
		return err
	}
	if err := buffered.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func Read(r io.Reader) (Rows, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = len(Columns)
	records, err := cr.ReadAll()
	if err != nil {
		return Rows{}, err
	}
	rows := Rows{
		W:         make([]float64, len(records)),
		Elastic:   make([]float64, len(records)),
		Inelastic: make([]float64, len(records)),
	}
	for i, record := range records {
		columns := []*float64{&rows.W[i], &rows.Elastic[i], &rows.Inelastic[i]}
		for j := range record {
			if *columns[j], err = strconv.ParseFloat(strings.TrimSpace(record[j]), 64); err != nil {
				return Rows{}, fmt.Errorf("row %d, column %s: %w", i+1, Columns[j], err)
			}
		}
	}
	return rows, nil
}

func Load(path string) (Rows, error) {
	file, err := os.Open(path)
	if err != nil {
		return Rows{}, err
	}
	defer file.Close()
	return Read(bufio.NewReader(file))
}
