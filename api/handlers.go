package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"estate-intel/fetcher"
	"estate-intel/models"
	"estate-intel/services"
)

type assumptionsPayload struct {
	MonthlyRent       *float64 `json:"monthly_rent"`
	VacancyRate       *float64 `json:"vacancy_rate"`
	ExpenseRatio      *float64 `json:"expense_ratio"`
	AnnualDebtService *float64 `json:"annual_debt_service"`
}

type reportPayload struct {
	URL            string             `json:"url"`
	MaxComparables *int               `json:"max_comparables"`
	Assumptions    assumptionsPayload `json:"assumptions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGenerateReport runs the pipeline for the posted URL and streams the
// workbook back as an attachment.
func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var payload reportPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}
	if payload.URL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "url is required"})
		return
	}

	maxComps := s.defaultMaxComparables
	if payload.MaxComparables != nil {
		maxComps = *payload.MaxComparables
	}

	req := services.ReportRequest{
		URL:            payload.URL,
		MaxComparables: maxComps,
		Overrides: models.Assumptions{
			MonthlyRent:       payload.Assumptions.MonthlyRent,
			VacancyRate:       payload.Assumptions.VacancyRate,
			ExpenseRatio:      payload.Assumptions.ExpenseRatio,
			AnnualDebtService: payload.Assumptions.AnnualDebtService,
		},
	}

	report, workbook, err := s.svc.GenerateWorkbook(r.Context(), req)
	if err != nil {
		status := http.StatusBadGateway
		msg := err.Error()
		if fetcher.IsBlocked(err) {
			msg = "the listing site blocked the request; retry with a locally saved copy via the CLI"
		}
		s.logger.Error("report generation failed", "url", payload.URL, "err", err)
		writeJSON(w, status, errorResponse{Error: msg})
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="report-%s.xlsx"`, report.ID))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(workbook)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(workbook); err != nil {
		s.logger.Warn("workbook response write failed", "report_id", report.ID, "err", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
