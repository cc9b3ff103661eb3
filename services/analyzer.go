package services

import (
	"fmt"
	"log/slog"
	"strings"

	"estate-intel/models"
)

// Rates are the configured default economic rates used to derive assumptions
// the caller did not supply.
type Rates struct {
	RentYieldMonthly float64
	VacancyRate      float64
	ExpenseRatio     float64
	DebtServiceRate  float64
}

// Analyzer resolves economic assumptions and scores the subject listing.
// KPI computation itself is the pure Compute function.
type Analyzer struct {
	rates  Rates
	logger *slog.Logger
}

// NewAnalyzer creates an Analyzer with the given default rates.
func NewAnalyzer(rates Rates, logger *slog.Logger) *Analyzer {
	return &Analyzer{rates: rates, logger: logger}
}

// ResolveAssumptions merges caller overrides with derived defaults: rent and
// debt service are proxied from the listing price, vacancy and expense ratio
// fall back to the configured rates. Caller-supplied values always win.
func (a *Analyzer) ResolveAssumptions(l *models.Listing, overrides models.Assumptions) models.Assumptions {
	out := overrides

	if out.MonthlyRent == nil && l.Price != nil && *l.Price > 0 {
		v := *l.Price * a.rates.RentYieldMonthly
		out.MonthlyRent = &v
	}
	if out.VacancyRate == nil {
		v := a.rates.VacancyRate
		out.VacancyRate = &v
	}
	if out.ExpenseRatio == nil {
		v := a.rates.ExpenseRatio
		out.ExpenseRatio = &v
	}
	if out.AnnualDebtService == nil && l.Price != nil && *l.Price > 0 {
		v := *l.Price * a.rates.DebtServiceRate
		out.AnnualDebtService = &v
	}

	return out
}

// Compute derives the investment KPIs for one listing. Each metric is
// independent: a missing input or non-positive denominator leaves only that
// metric nil, never the whole result, and never a fabricated zero.
func Compute(l *models.Listing, as models.Assumptions) *models.Metrics {
	m := &models.Metrics{}

	if l.Price != nil && *l.Price > 0 && l.AreaSqft != nil && *l.AreaSqft > 0 {
		v := *l.Price / *l.AreaSqft
		m.PricePerSqft = &v
	}

	annualRent := as.AnnualRent()
	if annualRent == nil || *annualRent <= 0 {
		return m
	}

	vacancy, expense := 0.0, 0.0
	if as.VacancyRate != nil {
		vacancy = *as.VacancyRate
	}
	if as.ExpenseRatio != nil {
		expense = *as.ExpenseRatio
	}

	noi := *annualRent * (1 - vacancy) * (1 - expense)
	m.NOI = &noi

	if l.Price != nil && *l.Price > 0 {
		capRate := noi / *l.Price
		m.CapRate = &capRate

		grm := *l.Price / *annualRent
		m.GRM = &grm
	}

	if as.AnnualDebtService != nil {
		cashflow := noi - *as.AnnualDebtService
		m.AnnualCashflow = &cashflow
	}

	return m
}

// Decision produces the executive verdict for the subject listing: one point
// each for a cap rate at or above 5%, a price/sqft at or below the comparable
// average, and three or more bedrooms. Two points make an INVEST.
func Decision(subject *models.Listing, kpi *models.Metrics, comps []models.Comparable) string {
	score := 0
	var notes []string

	if kpi.CapRate != nil && *kpi.CapRate >= 0.05 {
		score++
		notes = append(notes, "Cap rate is above target (5%).")
	} else {
		notes = append(notes, "Cap rate is below 5% threshold.")
	}

	if kpi.PricePerSqft != nil {
		var sum float64
		var n int
		for _, c := range comps {
			if c.KPI != nil && c.KPI.PricePerSqft != nil {
				sum += *c.KPI.PricePerSqft
				n++
			}
		}
		if n > 0 {
			avg := sum / float64(n)
			if *kpi.PricePerSqft <= avg {
				score++
				notes = append(notes, "Price/sqft is at or below comparable average.")
			} else {
				notes = append(notes, fmt.Sprintf("Price/sqft is above comparable average ($%.2f).", avg))
			}
		}
	}

	if subject.Beds != nil && *subject.Beds >= 3 {
		score++
		notes = append(notes, "Bedroom count supports family-rental demand.")
	}

	verdict := "REVIEW"
	if score >= 2 {
		verdict = "INVEST"
	}
	return verdict + ": " + strings.Join(notes, " ")
}
