package models

import "time"

// Listing holds the fields heuristically extracted from one listing page.
// Extraction may fail per field, so everything except the URL is a pointer:
// nil means "the page never yielded a usable value", which is a different
// statement than zero or an empty string.
type Listing struct {
	URL          string
	SourceDomain string
	Title        *string
	Price        *float64
	Beds         *int
	Baths        *float64
	AreaSqft     *float64
	PropertyType *string
	City         *string
	ScrapedAt    time.Time
}

// Assumptions are the caller-supplied economic parameters feeding the KPI
// calculation. A nil field means the caller made no assumption; the analyzer
// may derive rent and debt service from the subject price.
type Assumptions struct {
	MonthlyRent       *float64
	VacancyRate       *float64
	ExpenseRatio      *float64
	AnnualDebtService *float64
}

// AnnualRent returns MonthlyRent scaled to a year, or nil.
func (a Assumptions) AnnualRent() *float64 {
	if a.MonthlyRent == nil {
		return nil
	}
	v := *a.MonthlyRent * 12
	return &v
}

// Metrics holds the derived investment KPIs. A nil metric means its
// preconditions were unmet (missing input or non-positive denominator);
// absent is never reported as zero.
type Metrics struct {
	PricePerSqft   *float64
	NOI            *float64
	CapRate        *float64
	GRM            *float64
	AnnualCashflow *float64
}

// Comparable pairs a discovered same-domain listing with its KPIs.
type Comparable struct {
	Listing *Listing
	KPI     *Metrics
}

// Report is the full result of one generation run. It lives only for the
// duration of that run; the exported workbook is the sole persistent output.
type Report struct {
	ID          string
	GeneratedAt time.Time
	Subject     *Listing
	SubjectKPI  *Metrics
	Comparables []Comparable
	Assumptions Assumptions
	Decision    string
}
