// Package agronomy computes the derived metrics stored with each bay.
package agronomy

import "time"

// WeekAnchor returns the Wednesday of ISO week `week` of ISO year `year`.
// ok is false when the pair does not name a real ISO week.
func WeekAnchor(year, week int) (time.Time, bool) {
	if year < 1 || year > 9999 || week < 1 || week > 53 {
		return time.Time{}, false
	}
	// Jan 4th is always in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7 // days since Monday
	monday := jan4.AddDate(0, 0, -offset+(week-1)*7)
	wed := monday.AddDate(0, 0, 2)
	if y, w := wed.ISOWeek(); y != year || w != week {
		return time.Time{}, false
	}
	return wed, true
}

// AgeWeeks is the number of whole weeks between planting and the anchor of
// (year, week), never negative. ok is false when planting is nil or the week
// cannot be resolved.
func AgeWeeks(planting *time.Time, year, week int) (int, bool) {
	if planting == nil {
		return 0, false
	}
	ref, ok := WeekAnchor(year, week)
	if !ok {
		return 0, false
	}
	p := time.Date(planting.Year(), planting.Month(), planting.Day(), 0, 0, 0, 0, time.UTC)
	// Unix seconds, not Sub: a Duration saturates past ~292 years.
	days := int((ref.Unix() - p.Unix()) / 86400)
	if days < 0 {
		return 0, true
	}
	return days / 7, true
}

// PlantDensity returns (1 / (rowSpacing * plantSpacing)) * rowsPerBed, in
// plants per unit area of the spacing units. No further conversion is applied.
// ok is false when any input is not positive.
func PlantDensity(rowSpacingM, plantSpacingM float64, rowsPerBed int) (float64, bool) {
	if rowSpacingM <= 0 || plantSpacingM <= 0 || rowsPerBed <= 0 {
		return 0, false
	}
	return (1 / (rowSpacingM * plantSpacingM)) * float64(rowsPerBed), true
}
