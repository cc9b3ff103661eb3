package services

import (
	"math"
	"strings"
	"testing"

	"estate-intel/models"
	"estate-intel/utils"
)

const tolerance = 0.0001

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func listingWith(price, area *float64) *models.Listing {
	return &models.Listing{URL: "https://x.test/1", Price: price, AreaSqft: area}
}

func TestComputePricePerSqft(t *testing.T) {
	// "$450,000" and "1,200 sqft" normalize to 450000 / 1200 = 375.
	m := Compute(listingWith(f(450000), f(1200)), models.Assumptions{})
	if m.PricePerSqft == nil || math.Abs(*m.PricePerSqft-375.0) > tolerance {
		t.Errorf("PricePerSqft: got %v, want 375", m.PricePerSqft)
	}
}

func TestComputePricePerSqftAbsentOnBadInputs(t *testing.T) {
	tests := []struct {
		name  string
		price *float64
		area  *float64
	}{
		{"no price", nil, f(1200)},
		{"no area", f(450000), nil},
		{"zero area", f(450000), f(0)},
		{"negative price", f(-1), f(1200)},
		{"zero price", f(0), f(1200)},
	}

	for _, tt := range tests {
		m := Compute(listingWith(tt.price, tt.area), models.Assumptions{})
		if m.PricePerSqft != nil {
			t.Errorf("%s: PricePerSqft = %v, want absent", tt.name, *m.PricePerSqft)
		}
	}
}

func TestComputeWithoutRentAssumption(t *testing.T) {
	m := Compute(listingWith(f(500000), f(1500)), models.Assumptions{})

	if m.NOI != nil || m.CapRate != nil || m.GRM != nil || m.AnnualCashflow != nil {
		t.Errorf("rent-dependent metrics should all be absent, got %+v", m)
	}
	if m.PricePerSqft == nil {
		t.Error("PricePerSqft should still be computed from price and area")
	}
}

func TestComputeFullAssumptions(t *testing.T) {
	as := models.Assumptions{
		MonthlyRent:       f(2500),
		VacancyRate:       f(0.06),
		ExpenseRatio:      f(0.35),
		AnnualDebtService: f(7500),
	}
	m := Compute(listingWith(f(500000), nil), as)

	// annual rent 30000 → noi 30000 * 0.94 * 0.65 = 18330
	if m.NOI == nil || math.Abs(*m.NOI-18330) > tolerance {
		t.Errorf("NOI: got %v, want 18330", m.NOI)
	}
	if m.CapRate == nil || math.Abs(*m.CapRate-18330.0/500000) > tolerance {
		t.Errorf("CapRate: got %v, want %.6f", m.CapRate, 18330.0/500000)
	}
	if m.GRM == nil || math.Abs(*m.GRM-500000.0/30000) > tolerance {
		t.Errorf("GRM: got %v, want %.4f", m.GRM, 500000.0/30000)
	}
	if m.AnnualCashflow == nil || math.Abs(*m.AnnualCashflow-10830) > tolerance {
		t.Errorf("AnnualCashflow: got %v, want 10830", m.AnnualCashflow)
	}
}

func TestComputePriceGuardsDenominators(t *testing.T) {
	as := models.Assumptions{MonthlyRent: f(2500)}
	m := Compute(listingWith(nil, nil), as)

	if m.NOI == nil {
		t.Error("NOI needs only rent and should be present")
	}
	if m.CapRate != nil || m.GRM != nil {
		t.Errorf("CapRate/GRM need a positive price, got %v / %v", m.CapRate, m.GRM)
	}
}

func TestResolveAssumptionsDerivesFromPrice(t *testing.T) {
	a := NewAnalyzer(Rates{
		RentYieldMonthly: 0.006,
		VacancyRate:      0.06,
		ExpenseRatio:     0.35,
		DebtServiceRate:  0.015,
	}, utils.NewLogger("error"))

	got := a.ResolveAssumptions(listingWith(f(500000), nil), models.Assumptions{})

	if got.MonthlyRent == nil || math.Abs(*got.MonthlyRent-3000) > tolerance {
		t.Errorf("MonthlyRent: got %v, want 3000", got.MonthlyRent)
	}
	if got.VacancyRate == nil || *got.VacancyRate != 0.06 {
		t.Errorf("VacancyRate: got %v, want 0.06", got.VacancyRate)
	}
	if got.ExpenseRatio == nil || *got.ExpenseRatio != 0.35 {
		t.Errorf("ExpenseRatio: got %v, want 0.35", got.ExpenseRatio)
	}
	if got.AnnualDebtService == nil || math.Abs(*got.AnnualDebtService-7500) > tolerance {
		t.Errorf("AnnualDebtService: got %v, want 7500", got.AnnualDebtService)
	}
}

func TestResolveAssumptionsKeepsOverrides(t *testing.T) {
	a := NewAnalyzer(Rates{RentYieldMonthly: 0.006, VacancyRate: 0.06, ExpenseRatio: 0.35, DebtServiceRate: 0.015},
		utils.NewLogger("error"))

	got := a.ResolveAssumptions(listingWith(f(500000), nil), models.Assumptions{
		MonthlyRent: f(2000),
		VacancyRate: f(0),
	})

	if got.MonthlyRent == nil || *got.MonthlyRent != 2000 {
		t.Errorf("MonthlyRent override lost: got %v", got.MonthlyRent)
	}
	if got.VacancyRate == nil || *got.VacancyRate != 0 {
		t.Errorf("explicit zero VacancyRate lost: got %v", got.VacancyRate)
	}
}

func TestResolveAssumptionsWithoutPrice(t *testing.T) {
	a := NewAnalyzer(Rates{RentYieldMonthly: 0.006, VacancyRate: 0.06, ExpenseRatio: 0.35, DebtServiceRate: 0.015},
		utils.NewLogger("error"))

	got := a.ResolveAssumptions(listingWith(nil, nil), models.Assumptions{})
	if got.MonthlyRent != nil || got.AnnualDebtService != nil {
		t.Errorf("price-derived assumptions should stay absent without a price, got %+v", got)
	}
}

func TestDecisionScoring(t *testing.T) {
	subject := &models.Listing{URL: "https://x.test/1", Beds: i(4), Price: f(400000), AreaSqft: f(1600)}
	kpi := &models.Metrics{CapRate: f(0.06), PricePerSqft: f(250)}
	comps := []models.Comparable{
		{Listing: &models.Listing{}, KPI: &models.Metrics{PricePerSqft: f(300)}},
		{Listing: &models.Listing{}, KPI: &models.Metrics{PricePerSqft: f(280)}},
	}

	got := Decision(subject, kpi, comps)
	if !strings.HasPrefix(got, "INVEST:") {
		t.Errorf("expected INVEST verdict, got %q", got)
	}
}

func TestDecisionReviewWhenWeak(t *testing.T) {
	subject := &models.Listing{URL: "https://x.test/1", Beds: i(1)}
	kpi := &models.Metrics{CapRate: f(0.02)}

	got := Decision(subject, kpi, nil)
	if !strings.HasPrefix(got, "REVIEW:") {
		t.Errorf("expected REVIEW verdict, got %q", got)
	}
}
