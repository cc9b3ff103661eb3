package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	UserAgent      string
	FetchTimeoutS  int
	MaxComparables int
	UseBrowser     bool
	ChromeBin      string

	// Default economic rates used when the caller supplies no assumption.
	RentYieldMonthly float64
	VacancyRate      float64
	ExpenseRatio     float64
	DebtServiceRate  float64

	OutputPath string
	ListenAddr string
	LogLevel   string
}

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		UserAgent:      getEnv("USER_AGENT", defaultUserAgent),
		FetchTimeoutS:  getEnvInt("FETCH_TIMEOUT_S", 15),
		MaxComparables: getEnvInt("MAX_COMPARABLES", 5),
		UseBrowser:     getEnv("USE_BROWSER", "") == "true",
		ChromeBin:      getEnv("CHROME_BIN", ""),

		RentYieldMonthly: getEnvFloat("RENT_YIELD_MONTHLY", 0.006),
		VacancyRate:      getEnvFloat("VACANCY_RATE", 0.06),
		ExpenseRatio:     getEnvFloat("EXPENSE_RATIO", 0.35),
		DebtServiceRate:  getEnvFloat("DEBT_SERVICE_RATE", 0.015),

		OutputPath: getEnv("OUTPUT_PATH", "./output/executive_property_analysis.xlsx"),
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}
