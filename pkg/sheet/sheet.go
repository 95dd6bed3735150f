// Package sheet reads small reference tables from CSV or XLSX files.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a header row plus data rows, with cells trimmed.
type Table struct {
	Header []string
	Rows   [][]string

	cols map[string]int
}

// Read loads path as CSV or, for .xlsx, the first sheet of the workbook.
func Read(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readXLSX(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadCSV(f)
	}
}

// ReadCSV parses a CSV stream whose first record is the header.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	t := &Table{Header: head}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		t.Rows = append(t.Rows, rec)
	}
	t.index()
	return t, nil
}

func readXLSX(path string) (*Table, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: sheet %q is empty", path, sheets[0])
	}
	t := &Table{Header: rows[0], Rows: rows[1:]}
	t.index()
	return t, nil
}

func (t *Table) index() {
	t.cols = map[string]int{}
	for i, h := range t.Header {
		t.cols[norm(h)] = i
	}
}

// norm folds a header so "Bay Area (ha)", "bay_area_ha" and "bayareaha" match.
func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	r := strings.NewReplacer(" ", "", "-", "", "_", "", "(", "", ")", "", "/", "", ".", "")
	return r.Replace(s)
}

// Col returns the index of the first header matching any alias, or -1.
func (t *Table) Col(aliases ...string) int {
	for _, a := range aliases {
		if idx, ok := t.cols[norm(a)]; ok {
			return idx
		}
	}
	return -1
}

// Cell returns the trimmed cell at idx, or "" for short rows and idx < 0.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Float parses a cell, accepting a decimal comma ("0,06").
func Float(row []string, idx int) (float64, error) {
	s := strings.ReplaceAll(Cell(row, idx), ",", ".")
	return strconv.ParseFloat(s, 64)
}

// Int parses an integer cell.
func Int(row []string, idx int) (int, error) {
	return strconv.Atoi(Cell(row, idx))
}
