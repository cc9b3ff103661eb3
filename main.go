package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estate-intel/api"
	"estate-intel/config"
	"estate-intel/fetcher"
	"estate-intel/models"
	"estate-intel/monitoring"
	"estate-intel/scraper/comparables"
	"estate-intel/services"
	"estate-intel/storage"
	"estate-intel/utils"
)

func main() {
	var (
		urlFlag    = flag.String("url", "", "listing URL to analyze")
		htmlFile   = flag.String("html", "", "locally saved listing HTML, used as source or as fallback when the site blocks the fetch")
		outPath    = flag.String("out", "", "workbook output path (default OUTPUT_PATH)")
		maxComps   = flag.Int("comps", -1, "comparable listings to include (default MAX_COMPARABLES)")
		assumeFile = flag.String("assumptions", "", "YAML file with economic assumptions")
		rent       = flag.Float64("rent", 0, "monthly rent assumption")
		vacancy    = flag.Float64("vacancy", 0, "vacancy rate assumption (e.g. 0.06)")
		expense    = flag.Float64("expense", 0, "expense ratio assumption (e.g. 0.35)")
		debt       = flag.Float64("debt", 0, "annual debt service assumption")
		useBrowser = flag.Bool("browser", false, "fetch through headless Chrome for JS-rendered pages")
		serve      = flag.Bool("serve", false, "run the HTTP API instead of a one-shot report")
		addr       = flag.String("addr", "", "listen address for -serve (default LISTEN_ADDR)")
	)
	flag.Parse()

	cfg := config.Load()
	logger := utils.NewLogger(cfg.LogLevel)

	logger.Info("=== Estate Intel starting ===",
		"max_comparables", cfg.MaxComparables,
		"fetch_timeout_s", cfg.FetchTimeoutS,
		"browser", *useBrowser || cfg.UseBrowser)

	overrides, err := buildOverrides(*assumeFile, *rent, *vacancy, *expense, *debt)
	if err != nil {
		logger.Error("failed to load assumptions", "err", err)
		os.Exit(1)
	}

	timeout := time.Duration(cfg.FetchTimeoutS) * time.Second
	var pageFetcher fetcher.Fetcher
	if *useBrowser || cfg.UseBrowser {
		pageFetcher = fetcher.NewBrowser(cfg.ChromeBin, cfg.UserAgent, timeout, logger)
	} else {
		pageFetcher = fetcher.NewPageFetcher(cfg.UserAgent, timeout, logger)
	}

	collector := comparables.New(pageFetcher, logger)
	analyzer := services.NewAnalyzer(services.Rates{
		RentYieldMonthly: cfg.RentYieldMonthly,
		VacancyRate:      cfg.VacancyRate,
		ExpenseRatio:     cfg.ExpenseRatio,
		DebtServiceRate:  cfg.DebtServiceRate,
	}, logger)

	output := cfg.OutputPath
	if *outPath != "" {
		output = *outPath
	}
	writer := storage.NewExcelWriter(output, logger)
	metrics := monitoring.NewMetrics()
	svc := services.NewReportService(pageFetcher, collector, analyzer, writer, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *serve {
		listenAddr := cfg.ListenAddr
		if *addr != "" {
			listenAddr = *addr
		}
		runServer(ctx, listenAddr, svc, metrics, cfg.MaxComparables, logger)
		return
	}

	if *urlFlag == "" && *htmlFile == "" {
		fmt.Fprintln(os.Stderr, "either -url or -html is required (or -serve)")
		flag.Usage()
		os.Exit(2)
	}

	comps := cfg.MaxComparables
	if *maxComps >= 0 {
		comps = *maxComps
	}

	req := services.ReportRequest{
		URL:            *urlFlag,
		LocalHTMLPath:  *htmlFile,
		MaxComparables: comps,
		Overrides:      overrides,
	}

	report, err := svc.Generate(ctx, req)
	if err != nil {
		logger.Error("report generation failed", "err", err)
		os.Exit(1)
	}

	if err := writer.Write(report); err != nil {
		logger.Error("workbook export failed", "err", err)
		os.Exit(1)
	}

	svc.PrintSummary(report)
	fmt.Printf("  Done. Workbook → %s\n\n", output)
}

func runServer(ctx context.Context, addr string, svc *services.ReportService,
	metrics *monitoring.Metrics, defaultMaxComps int, logger *slog.Logger) {
	srv := api.NewServer(addr, svc, metrics, defaultMaxComps, logger)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown failed", "err", err)
		}
	}()

	if err := srv.Start(); err != nil {
		logger.Error("http server failed", "err", err)
		os.Exit(1)
	}
}

// buildOverrides merges the YAML assumptions file with explicitly passed
// flags; flags win. A flag left at its default is treated as unset so an
// explicit zero can still be expressed via the YAML file.
func buildOverrides(assumeFile string, rent, vacancy, expense, debt float64) (models.Assumptions, error) {
	var out models.Assumptions

	if assumeFile != "" {
		loaded, err := config.LoadAssumptions(assumeFile)
		if err != nil {
			return models.Assumptions{}, err
		}
		out = loaded
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["rent"] {
		out.MonthlyRent = &rent
	}
	if set["vacancy"] {
		out.VacancyRate = &vacancy
	}
	if set["expense"] {
		out.ExpenseRatio = &expense
	}
	if set["debt"] {
		out.AnnualDebtService = &debt
	}
	return out, nil
}
