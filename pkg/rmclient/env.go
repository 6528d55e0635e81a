package rmclient

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/fivetwenty-io/rmapi/pkg/rmapi"
)

// envConfig mirrors the environment-settable part of rmapi.Config.
type envConfig struct {
	APIEndpoint  string        `env:"RMAPI_API_ENDPOINT"`
	HTTPTimeout  time.Duration `env:"RMAPI_HTTP_TIMEOUT"`
	RetryMax     int           `env:"RMAPI_RETRY_MAX"`
	RetryWaitMin time.Duration `env:"RMAPI_RETRY_WAIT_MIN"`
	RetryWaitMax time.Duration `env:"RMAPI_RETRY_WAIT_MAX"`
	RateLimit    float64       `env:"RMAPI_RATE_LIMIT"`
	Concurrency  int           `env:"RMAPI_CONCURRENCY"`
	MaxPages     int           `env:"RMAPI_MAX_PAGES"`
	Debug        bool          `env:"RMAPI_DEBUG"`
	UserAgent    string        `env:"RMAPI_USER_AGENT"`
}

// ConfigFromEnv loads client configuration from RMAPI_* environment
// variables. Unset variables leave the corresponding field at its zero
// value, which New and the client treat as "use the default".
func ConfigFromEnv() (*rmapi.Config, error) {
	var cfg envConfig

	err := env.Parse(&cfg)
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return &rmapi.Config{
		APIEndpoint:  cfg.APIEndpoint,
		HTTPTimeout:  cfg.HTTPTimeout,
		RetryMax:     cfg.RetryMax,
		RetryWaitMin: cfg.RetryWaitMin,
		RetryWaitMax: cfg.RetryWaitMax,
		RateLimit:    cfg.RateLimit,
		Concurrency:  cfg.Concurrency,
		MaxPages:     cfg.MaxPages,
		Debug:        cfg.Debug,
		UserAgent:    cfg.UserAgent,
	}, nil
}
