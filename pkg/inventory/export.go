package inventory

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"estufas/entities"
)

// Columns is the export header, in InventoryRecord field order.
var Columns = []string{
	"block_id", "bay_range_label", "year", "week",
	"crop_name", "color", "planting_date",
	"row_spacing_m", "plant_spacing_m", "rows_per_bed", "block_row_count", "observations",
	"age_weeks", "plant_density_per_ha",
	"bay_group_count", "bay_area_ha", "total_area_group_ha",
}

// SheetName is the worksheet written by WriteXLSX.
const SheetName = "Inventario"

// Row renders r as export cells. Absent values become "".
func Row(r entities.InventoryRecord) []string {
	date := ""
	if r.PlantingDate != nil {
		date = r.PlantingDate.Format("2006-01-02")
	}
	return []string{
		strconv.Itoa(r.BlockID),
		r.BayRangeLabel,
		strconv.Itoa(r.Year),
		strconv.Itoa(r.Week),
		r.CropName,
		r.Color,
		date,
		ftoa(r.RowSpacingM),
		ftoa(r.PlantSpacingM),
		strconv.Itoa(r.RowsPerBed),
		optInt(r.BlockRowCount),
		optString(r.Observations),
		optInt(r.AgeWeeks),
		optFloat(r.PlantDensityPerHa),
		strconv.Itoa(r.BayGroupCount),
		ftoa(r.BayAreaHa),
		ftoa(r.TotalAreaGroupHa),
	}
}

// WriteCSV writes the header and one line per record.
func WriteCSV(w io.Writer, recs []entities.InventoryRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write(Row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the same table as WriteCSV into a workbook. Numeric
// columns are stored as numbers.
func WriteXLSX(w io.Writer, recs []entities.InventoryRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}
	for i, r := range recs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := xlsxRow(r)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return f.Write(w)
}

func xlsxRow(r entities.InventoryRecord) []interface{} {
	cells := Row(r)
	out := make([]interface{}, len(cells))
	for i, s := range cells {
		out[i] = s
	}
	// numeric columns
	out[0] = r.BlockID
	out[2] = r.Year
	out[3] = r.Week
	out[7] = r.RowSpacingM
	out[8] = r.PlantSpacingM
	out[9] = r.RowsPerBed
	if r.BlockRowCount != nil {
		out[10] = *r.BlockRowCount
	}
	if r.AgeWeeks != nil {
		out[12] = *r.AgeWeeks
	}
	if r.PlantDensityPerHa != nil {
		out[13] = *r.PlantDensityPerHa
	}
	out[14] = r.BayGroupCount
	out[15] = r.BayAreaHa
	out[16] = r.TotalAreaGroupHa
	return out
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func optInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func optFloat(p *float64) string {
	if p == nil {
		return ""
	}
	return ftoa(*p)
}

func optString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
