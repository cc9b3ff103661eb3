package services

import (
	"fmt"
	"strings"

	"estate-intel/models"
)

// PrintSummary dumps a human-readable report summary to stdout after a
// one-shot CLI run.
func (s *ReportService) PrintSummary(r *models.Report) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🏠 EXECUTIVE PROPERTY ANALYSIS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Subject Listing\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Title : %s\n", orNA(r.Subject.Title))
	fmt.Printf("  URL   : %s\n", r.Subject.URL)
	fmt.Printf("  City  : %s | Type: %s\n", orNA(r.Subject.City), orNA(r.Subject.PropertyType))
	fmt.Printf("  Price : %s | Area: %s sqft | Beds: %s | Baths: %s\n",
		money(r.Subject.Price), number(r.Subject.AreaSqft), intOrNA(r.Subject.Beds), number(r.Subject.Baths))
	fmt.Println()

	fmt.Printf("\033[1;33m  Investment KPIs\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Price/sqft      : %s\n", money(r.SubjectKPI.PricePerSqft))
	fmt.Printf("  Estimated NOI   : %s\n", money(r.SubjectKPI.NOI))
	fmt.Printf("  Cap rate        : %s\n", percent(r.SubjectKPI.CapRate))
	fmt.Printf("  GRM             : %s\n", number(r.SubjectKPI.GRM))
	fmt.Printf("  Annual cashflow : %s\n", money(r.SubjectKPI.AnnualCashflow))
	fmt.Println()

	fmt.Printf("\033[1;33m  Comparables (%d)\033[0m\n", len(r.Comparables))
	fmt.Printf("  %s\n", thin)
	if len(r.Comparables) == 0 {
		fmt.Printf("  No comparable listings found\n")
	} else {
		for i, c := range r.Comparables {
			fmt.Printf("  \033[1m%d.\033[0m %-40s %s\n",
				i+1, truncate(orNA(c.Listing.Title), 38), money(c.Listing.Price))
		}
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Decision\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  %s\n", r.Decision)
	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func orNA(s *string) string {
	if s == nil {
		return "N/A"
	}
	return *s
}

func money(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", *v)
}

func percent(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

func number(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}

func intOrNA(v *int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
