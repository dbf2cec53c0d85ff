package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPAddr          string
	DatabaseURL       string
	InternalToken     string
	CORSAllowOrigin   string
	DefaultTaxPercent decimal.Decimal
	DocumentDir       string
	DocumentBaseURL   string
}

func MustLoad() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:          env("HTTP_ADDR", ":8080"),
		DatabaseURL:       mustEnv("DATABASE_URL"),
		InternalToken:     mustEnv("INTERNAL_TOKEN"),
		CORSAllowOrigin:   env("CORS_ALLOW_ORIGIN", "*"),
		DefaultTaxPercent: decimalEnv("DEFAULT_TAX_PERCENT", "16"),
		DocumentDir:       env("DOCUMENT_DIR", "./documents"),
		DocumentBaseURL:   env("DOCUMENT_BASE_URL", "/documents"),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env %s", k)
	}
	return v
}

func decimalEnv(k, def string) decimal.Decimal {
	d, err := decimal.NewFromString(env(k, def))
	if err != nil {
		log.Fatalf("invalid %s: %v", k, err)
	}
	return d
}
