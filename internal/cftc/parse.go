package cftc

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"CotLens/internal/domain/models"
)

// rawRow is one Socrata record. The API serializes every column as a string.
type rawRow map[string]string

var dateLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseReportDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// fieldInt parses a numeric column, treating missing or malformed values as
// zero the way the upstream feed requires. Values arrive as floats ("12.0").
func fieldInt(row rawRow, field string) int64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(row[field]), 64)
	if err != nil {
		return 0
	}
	return int64(v)
}

// buildSeries converts raw report rows into weekly net-position rows. Rows
// from renamed contract variants can overlap on date; the last row seen for
// a date wins. Output is sorted oldest-first.
func buildSeries(rows []rawRow, fields []categoryField) []models.WeeklyRow {
	byDate := make(map[time.Time]models.WeeklyRow, len(rows))
	for _, row := range rows {
		date, ok := parseReportDate(row[dateField])
		if !ok {
			continue
		}
		nets := make(map[string]int64, len(fields))
		for _, f := range fields {
			nets[f.Label] = fieldInt(row, f.Long) - fieldInt(row, f.Short)
		}
		byDate[date] = models.WeeklyRow{
			Date:         date,
			Nets:         nets,
			OpenInterest: fieldInt(row, "open_interest_all"),
		}
	}

	out := make([]models.WeeklyRow, 0, len(byDate))
	for _, r := range byDate {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// latestFromRow processes a single legacy report row into the summary-card
// shape: net, week-over-week change and share of total positions per trader
// category.
func latestFromRow(row rawRow) *models.LatestReport {
	var total int64
	longs := make([]int64, len(legacyFields))
	shorts := make([]int64, len(legacyFields))
	for i, f := range legacyFields {
		longs[i] = fieldInt(row, f.Long)
		shorts[i] = fieldInt(row, f.Short)
		total += longs[i] + shorts[i]
	}

	categories := make([]models.CategoryPositions, len(legacyFields))
	for i, f := range legacyFields {
		pct := 0.0
		if total > 0 {
			pct = float64(longs[i]+shorts[i]) / float64(total) * 100
			pct = math.Round(pct*10) / 10
		}
		categories[i] = models.CategoryPositions{
			Label:   f.Label,
			Long:    longs[i],
			Short:   shorts[i],
			Net:     longs[i] - shorts[i],
			Change:  fieldInt(row, f.ChangeLong) - fieldInt(row, f.ChangeShort),
			PctOfOI: pct,
		}
	}

	reportDate := row[dateField]
	if t, ok := parseReportDate(reportDate); ok {
		reportDate = t.Format("January 02, 2006")
	}

	return &models.LatestReport{
		ReportDate:   reportDate,
		OpenInterest: fieldInt(row, "open_interest_all"),
		OIChange:     fieldInt(row, "change_in_open_interest_all"),
		Categories:   categories,
	}
}

// emptyReport is the placeholder served when no data exists for a symbol.
func emptyReport() *models.LatestReport {
	categories := make([]models.CategoryPositions, len(legacyFields))
	for i, f := range legacyFields {
		categories[i] = models.CategoryPositions{Label: f.Label}
	}
	return &models.LatestReport{
		ReportDate: "No Data Available",
		Categories: categories,
	}
}
