package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"estate-intel/models"
)

// Fixed workbook sheet names.
const (
	SheetSummary     = "Executive Summary"
	SheetComparables = "Comparables"
	SheetAssumptions = "Economic Assumptions"
)

var summaryHeaders = []string{
	"Report ID", "Generated At", "URL", "Title", "City", "Property Type",
	"Price", "Beds", "Baths", "Area Sqft", "Price/Sqft", "Estimated NOI",
	"Cap Rate", "GRM", "Annual Cashflow", "Decision",
}

var comparablesHeaders = []string{
	"URL", "Title", "Price", "Beds", "Baths", "Area Sqft",
	"Price/Sqft", "Cap Rate", "Price vs Subject",
}

var assumptionsHeaders = []string{
	"Monthly Rent", "Annual Rent", "Vacancy Rate", "Expense Ratio", "Annual Debt Service",
}

// ExcelWriter renders reports into xlsx workbooks with the three fixed
// sheets. Absent fields stay blank cells; no value is ever fabricated.
type ExcelWriter struct {
	path   string
	logger *slog.Logger
}

// NewExcelWriter creates a writer that saves workbooks at path.
func NewExcelWriter(path string, logger *slog.Logger) *ExcelWriter {
	return &ExcelWriter{path: path, logger: logger}
}

// Build renders the report into workbook bytes.
func (w *ExcelWriter) Build(report *models.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("excel: rename summary sheet: %w", err)
	}
	for _, sheet := range []string{SheetComparables, SheetAssumptions} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("excel: create sheet %q: %w", sheet, err)
		}
	}

	if err := w.writeSummary(f, report); err != nil {
		return nil, err
	}
	if err := w.writeComparables(f, report); err != nil {
		return nil, err
	}
	if err := w.writeAssumptions(f, report); err != nil {
		return nil, err
	}
	if err := w.applyStyles(f); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders and saves the workbook to the configured path, creating
// intermediate directories. A failure here terminates only this export.
func (w *ExcelWriter) Write(report *models.Report) error {
	b, err := w.Build(report)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("excel: create output dir: %w", err)
		}
	}
	if err := os.WriteFile(w.path, b, 0644); err != nil {
		return fmt.Errorf("excel: write workbook %q: %w", w.path, err)
	}

	w.logger.Info("workbook saved", "path", w.path, "bytes", len(b))
	return nil
}

func (w *ExcelWriter) writeSummary(f *excelize.File, r *models.Report) error {
	if err := setRow(f, SheetSummary, 1, toCells(summaryHeaders)); err != nil {
		return err
	}

	s, k := r.Subject, r.SubjectKPI
	row := []interface{}{
		r.ID,
		r.GeneratedAt.Format("2006-01-02T15:04:05Z"),
		s.URL,
		strPtr(s.Title),
		strPtr(s.City),
		strPtr(s.PropertyType),
		floatPtr(s.Price),
		intPtr(s.Beds),
		floatPtr(s.Baths),
		floatPtr(s.AreaSqft),
		floatPtr(k.PricePerSqft),
		floatPtr(k.NOI),
		floatPtr(k.CapRate),
		floatPtr(k.GRM),
		floatPtr(k.AnnualCashflow),
		r.Decision,
	}
	return setRow(f, SheetSummary, 2, row)
}

func (w *ExcelWriter) writeComparables(f *excelize.File, r *models.Report) error {
	if err := setRow(f, SheetComparables, 1, toCells(comparablesHeaders)); err != nil {
		return err
	}

	for i, c := range r.Comparables {
		row := []interface{}{
			c.Listing.URL,
			strPtr(c.Listing.Title),
			floatPtr(c.Listing.Price),
			intPtr(c.Listing.Beds),
			floatPtr(c.Listing.Baths),
			floatPtr(c.Listing.AreaSqft),
			floatPtr(c.KPI.PricePerSqft),
			floatPtr(c.KPI.CapRate),
			priceDelta(c.Listing.Price, r.Subject.Price),
		}
		if err := setRow(f, SheetComparables, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *ExcelWriter) writeAssumptions(f *excelize.File, r *models.Report) error {
	if err := setRow(f, SheetAssumptions, 1, toCells(assumptionsHeaders)); err != nil {
		return err
	}

	a := r.Assumptions
	row := []interface{}{
		floatPtr(a.MonthlyRent),
		floatPtr(a.AnnualRent()),
		floatPtr(a.VacancyRate),
		floatPtr(a.ExpenseRatio),
		floatPtr(a.AnnualDebtService),
	}
	return setRow(f, SheetAssumptions, 2, row)
}

func (w *ExcelWriter) applyStyles(f *excelize.File) error {
	moneyFmt := "$#,##0.00"
	pctFmt := "0.00%"

	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return fmt.Errorf("excel: money style: %w", err)
	}
	pctStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &pctFmt})
	if err != nil {
		return fmt.Errorf("excel: percent style: %w", err)
	}

	if err := f.SetColWidth(SheetSummary, "A", "P", 24); err != nil {
		return fmt.Errorf("excel: summary widths: %w", err)
	}
	if err := f.SetColWidth(SheetComparables, "A", "I", 22); err != nil {
		return fmt.Errorf("excel: comparables widths: %w", err)
	}
	if err := f.SetColWidth(SheetAssumptions, "A", "E", 20); err != nil {
		return fmt.Errorf("excel: assumptions widths: %w", err)
	}

	// Currency and percent columns; data rows only, headers stay plain.
	for _, cr := range []struct {
		sheet, from, to string
		style           int
	}{
		{SheetSummary, "G2", "G2", moneyStyle},
		{SheetSummary, "K2", "L2", moneyStyle},
		{SheetSummary, "M2", "M2", pctStyle},
		{SheetSummary, "O2", "O2", moneyStyle},
		{SheetComparables, "C2", "C1000", moneyStyle},
		{SheetComparables, "G2", "G1000", moneyStyle},
		{SheetComparables, "H2", "H1000", pctStyle},
		{SheetComparables, "I2", "I1000", moneyStyle},
		{SheetAssumptions, "A2", "B2", moneyStyle},
		{SheetAssumptions, "C2", "D2", pctStyle},
		{SheetAssumptions, "E2", "E2", moneyStyle},
	} {
		if err := f.SetCellStyle(cr.sheet, cr.from, cr.to, cr.style); err != nil {
			return fmt.Errorf("excel: style %s!%s:%s: %w", cr.sheet, cr.from, cr.to, err)
		}
	}
	return nil
}

// setRow writes one row, skipping nil values so absent fields render as
// blank cells.
func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("excel: cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("excel: set %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func toCells(headers []string) []interface{} {
	out := make([]interface{}, len(headers))
	for i, h := range headers {
		out[i] = h
	}
	return out
}

// floatPtr, intPtr and strPtr box present values and map nil to a nil cell.
func floatPtr(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func intPtr(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func strPtr(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func priceDelta(comp, subject *float64) interface{} {
	if comp == nil || subject == nil {
		return nil
	}
	return *comp - *subject
}
