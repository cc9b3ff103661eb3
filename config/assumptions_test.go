package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAssumptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assumptions.yaml")
	yaml := "monthly_rent: 2500\nexpense_ratio: 0.4\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadAssumptions(path)
	if err != nil {
		t.Fatalf("LoadAssumptions returned error: %v", err)
	}

	if got.MonthlyRent == nil || *got.MonthlyRent != 2500 {
		t.Errorf("MonthlyRent: got %v, want 2500", got.MonthlyRent)
	}
	if got.ExpenseRatio == nil || *got.ExpenseRatio != 0.4 {
		t.Errorf("ExpenseRatio: got %v, want 0.4", got.ExpenseRatio)
	}
	// omitted keys must stay nil, not zero
	if got.VacancyRate != nil || got.AnnualDebtService != nil {
		t.Errorf("omitted assumptions should be nil, got %+v", got)
	}
}

func TestLoadAssumptionsMissingFile(t *testing.T) {
	if _, err := LoadAssumptions(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadAssumptionsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("monthly_rent: [not a number"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAssumptions(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
