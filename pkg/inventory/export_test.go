package inventory

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"estufas/entities"
)

func sampleRecords() []entities.InventoryRecord {
	pd := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)
	age, rows := 4, 2
	dens := 53.333333
	obs := "linha dupla, rega manual"
	return []entities.InventoryRecord{
		{
			BlockID: 14, BayRangeLabel: "Nave 1 a 10", Year: 2025, Week: 48,
			CropName: "Alface", Color: "#43a047", PlantingDate: &pd,
			RowSpacingM: 0.3, PlantSpacingM: 0.25, RowsPerBed: 4, BlockRowCount: &rows,
			Observations: &obs, AgeWeeks: &age, PlantDensityPerHa: &dens,
			BayGroupCount: 10, BayAreaHa: 0.06, TotalAreaGroupHa: 0.6,
		},
		{
			BlockID: 5, BayRangeLabel: "Nave 9 a 22", Year: 2025, Week: 48,
			CropName: "Alface", BayGroupCount: 14, BayAreaHa: 0.06, TotalAreaGroupHa: 0.84,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("re-read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if !reflect.DeepEqual(rows[0], Columns) {
		t.Fatalf("header = %v", rows[0])
	}
	want := []string{"14", "Nave 1 a 10", "2025", "48", "Alface", "#43a047", "2025-10-31",
		"0.3", "0.25", "4", "2", "linha dupla, rega manual", "4", "53.333333", "10", "0.06", "0.6"}
	if !reflect.DeepEqual(rows[1], want) {
		t.Fatalf("row 1 =\n%v\nwant\n%v", rows[1], want)
	}
	if rows[2][6] != "" || rows[2][12] != "" || rows[2][13] != "" {
		t.Fatalf("absent values should be empty cells: %v", rows[2])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != strings.Join(Columns, ",") {
		t.Fatalf("got %q", got)
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleRecords()); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	if !reflect.DeepEqual(rows[0], Columns) {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][1] != "Nave 1 a 10" || rows[2][0] != "5" {
		t.Fatalf("unexpected rows %v", rows)
	}
	v, err := f.GetCellValue(SheetName, "Q3")
	if err != nil || v != "0.84" {
		t.Fatalf("total area cell = %q, %v", v, err)
	}
	// density matches the CSV rendering, no rounding
	if v, err := f.GetCellValue(SheetName, "N2"); err != nil || v != "53.333333" {
		t.Fatalf("density cell = %q, %v", v, err)
	}
}
