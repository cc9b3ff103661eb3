package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"estate-intel/extractor"
	"estate-intel/fetcher"
	"estate-intel/models"
	"estate-intel/monitoring"
	"estate-intel/storage"
)

// CompsCollector resolves candidate comparable URLs into listing records,
// dropping candidates that fail.
type CompsCollector interface {
	Collect(ctx context.Context, urls []string) []*models.Listing
}

// ReportRequest is one report-generation request. Either URL or
// LocalHTMLPath must be set; LocalHTMLPath also serves as the fallback
// source when the remote site blocks the fetch.
type ReportRequest struct {
	URL            string
	LocalHTMLPath  string
	MaxComparables int
	Overrides      models.Assumptions
}

// ReportService runs the report pipeline: fetch, extract, discover and
// collect comparables, compute KPIs, decide. One synchronous pipeline per
// call; every record it creates is owned by that call.
type ReportService struct {
	fetcher  fetcher.Fetcher
	comps    CompsCollector
	analyzer *Analyzer
	builder  storage.ReportBuilder
	metrics  *monitoring.Metrics
	logger   *slog.Logger
}

// NewReportService wires the pipeline dependencies together.
func NewReportService(f fetcher.Fetcher, comps CompsCollector, analyzer *Analyzer,
	builder storage.ReportBuilder, metrics *monitoring.Metrics, logger *slog.Logger) *ReportService {
	return &ReportService{
		fetcher:  f,
		comps:    comps,
		analyzer: analyzer,
		builder:  builder,
		metrics:  metrics,
		logger:   logger,
	}
}

// Generate runs the full pipeline and returns the assembled report.
func (s *ReportService) Generate(ctx context.Context, req ReportRequest) (*models.Report, error) {
	start := time.Now()

	html, recordURL, err := s.sourceHTML(ctx, req)
	if err != nil {
		s.metrics.IncFetchError(errorType(err))
		return nil, err
	}

	subject, err := extractor.Extract(html, recordURL)
	if err != nil {
		return nil, fmt.Errorf("report: extract subject: %w", err)
	}
	s.logger.Info("subject extracted",
		"url", recordURL,
		"has_price", subject.Price != nil,
		"has_area", subject.AreaSqft != nil)

	comps := s.collectComparables(ctx, html, recordURL, req)

	assumptions := s.analyzer.ResolveAssumptions(subject, req.Overrides)
	kpi := Compute(subject, assumptions)
	decision := Decision(subject, kpi, comps)

	report := &models.Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Subject:     subject,
		SubjectKPI:  kpi,
		Comparables: comps,
		Assumptions: assumptions,
		Decision:    decision,
	}

	s.metrics.IncReports()
	s.metrics.ObserveReportDuration(time.Since(start).Seconds())
	s.logger.Info("report generated", "id", report.ID, "comparables", len(comps), "took", time.Since(start))

	return report, nil
}

// GenerateWorkbook runs Generate and renders the workbook bytes, the single
// request/response surface presentation layers call.
func (s *ReportService) GenerateWorkbook(ctx context.Context, req ReportRequest) (*models.Report, []byte, error) {
	report, err := s.Generate(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	b, err := s.builder.Build(report)
	if err != nil {
		return nil, nil, fmt.Errorf("report: build workbook: %w", err)
	}
	return report, b, nil
}

// sourceHTML resolves the raw HTML for the request. Remote fetches that are
// blocked fall back to the local file when one was supplied; a purely local
// source has no URL, which later disables comparable discovery.
func (s *ReportService) sourceHTML(ctx context.Context, req ReportRequest) (html, recordURL string, err error) {
	if req.URL == "" {
		if req.LocalHTMLPath == "" {
			return "", "", errors.New("report: a listing url or a local html file is required")
		}
		html, err = fetcher.ReadLocal(req.LocalHTMLPath)
		return html, "", err
	}

	html, err = s.fetcher.Fetch(ctx, req.URL)
	if err == nil {
		return html, req.URL, nil
	}

	if fetcher.IsBlocked(err) && req.LocalHTMLPath != "" {
		s.logger.Warn("fetch blocked, falling back to local html",
			"url", req.URL, "file", req.LocalHTMLPath)
		html, ferr := fetcher.ReadLocal(req.LocalHTMLPath)
		if ferr != nil {
			return "", "", ferr
		}
		return html, req.URL, nil
	}

	return "", "", err
}

// collectComparables discovers same-domain candidates and resolves each into
// a listing with KPIs. Failures drop individual candidates, never the run.
func (s *ReportService) collectComparables(ctx context.Context, html, recordURL string, req ReportRequest) []models.Comparable {
	if req.MaxComparables <= 0 || recordURL == "" {
		return nil
	}

	urls, err := extractor.DiscoverComparables(html, recordURL, req.MaxComparables)
	if err != nil {
		s.logger.Warn("comparable discovery failed", "url", recordURL, "err", err)
		return nil
	}
	if len(urls) == 0 {
		return nil
	}

	listings := s.comps.Collect(ctx, urls)
	if dropped := len(urls) - len(listings); dropped > 0 {
		s.metrics.AddComparablesDropped(dropped)
	}

	comps := make([]models.Comparable, 0, len(listings))
	for _, l := range listings {
		as := s.analyzer.ResolveAssumptions(l, req.Overrides)
		comps = append(comps, models.Comparable{Listing: l, KPI: Compute(l, as)})
	}
	return comps
}

func errorType(err error) string {
	if fetcher.IsBlocked(err) {
		return "blocked"
	}
	return "fetch_failed"
}
