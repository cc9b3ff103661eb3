package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"estate-intel/models"
)

// assumptionsFile is the YAML shape of an economic-assumptions file.
// Omitted keys stay nil so the analyzer can tell "no assumption" apart
// from an explicit zero.
type assumptionsFile struct {
	MonthlyRent       *float64 `yaml:"monthly_rent"`
	VacancyRate       *float64 `yaml:"vacancy_rate"`
	ExpenseRatio      *float64 `yaml:"expense_ratio"`
	AnnualDebtService *float64 `yaml:"annual_debt_service"`
}

// LoadAssumptions reads economic assumptions from a YAML file.
func LoadAssumptions(path string) (models.Assumptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Assumptions{}, fmt.Errorf("assumptions: read %q: %w", path, err)
	}

	var f assumptionsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return models.Assumptions{}, fmt.Errorf("assumptions: parse %q: %w", path, err)
	}

	return models.Assumptions{
		MonthlyRent:       f.MonthlyRent,
		VacancyRate:       f.VacancyRate,
		ExpenseRatio:      f.ExpenseRatio,
		AnnualDebtService: f.AnnualDebtService,
	}, nil
}
