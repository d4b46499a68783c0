package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/amin-97/sport-vibe/traderules"
	"github.com/joho/godotenv"
)

// Config holds every runtime parameter of the application.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int

	CORSAllowedOrigin string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	// Trade rule tunables. League years change the cap numbers and the
	// CBA occasionally moves the restriction windows, so they are
	// overridable per deployment.
	Rules traderules.Config
}

// Load reads configuration from environment variables. A .env file is
// loaded first when present (useful for local development); a missing file
// is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := envInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	rules := traderules.DefaultConfig()
	if rules.SalaryCap, err = envInt64("NBA_SALARY_CAP", rules.SalaryCap); err != nil {
		return nil, err
	}
	if rules.LuxuryTax, err = envInt64("NBA_LUXURY_TAX_LINE", rules.LuxuryTax); err != nil {
		return nil, err
	}
	if rules.TaxApron, err = envInt64("NBA_TAX_APRON", rules.TaxApron); err != nil {
		return nil, err
	}
	if rules.MinimumSalary, err = envInt64("NBA_MINIMUM_SALARY", rules.MinimumSalary); err != nil {
		return nil, err
	}
	if rules.SignRestrictionDays, err = envInt("NBA_SIGN_RESTRICTION_DAYS", rules.SignRestrictionDays); err != nil {
		return nil, err
	}
	if rules.TradeRestrictionDays, err = envInt("NBA_TRADE_RESTRICTION_DAYS", rules.TradeRestrictionDays); err != nil {
		return nil, err
	}
	if rules.ExtensionRestrictionDays, err = envInt("NBA_EXTENSION_RESTRICTION_DAYS", rules.ExtensionRestrictionDays); err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:       dbURL,
		JWTSecretKey:      jwtKey,
		ServerPort:        port,
		CORSAllowedOrigin: envString("CORS_ALLOWED_ORIGIN", "http://localhost:5173"),
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
		Rules:             rules,
	}

	return cfg, nil
}

func envString(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envInt(name string, fallback int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}
	return parsed, nil
}

func envInt64(name string, fallback int64) (int64, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}
	return parsed, nil
}
