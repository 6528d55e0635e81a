// Package rmclient provides the main entry point for creating catalog API clients
package rmclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/rmapi/internal/client"
	"github.com/fivetwenty-io/rmapi/pkg/rmapi"
)

// New creates a new catalog API client. The config's endpoint is normalized
// in place: an empty endpoint becomes rmapi.DefaultAPIEndpoint, a trailing
// slash is removed and "https://" is added when no scheme is present.
func New(ctx context.Context, config *rmapi.Config) (rmapi.Client, error) {
	if config == nil {
		return nil, rmapi.ErrConfigRequired
	}

	apiEndpoint, err := NormalizeEndpoint(config.APIEndpoint)
	if err != nil {
		return nil, err
	}

	config.APIEndpoint = apiEndpoint

	if config.Logger != nil {
		config.Logger.Debug("creating catalog client", map[string]interface{}{
			"endpoint": apiEndpoint,
		})
	}

	// Use the internal client implementation
	c, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithEndpoint creates a new client with just an API endpoint.
func NewWithEndpoint(ctx context.Context, endpoint string) (rmapi.Client, error) {
	return New(ctx, &rmapi.Config{
		APIEndpoint: endpoint,
	})
}

// NewFromEnv creates a new client configured from RMAPI_* environment
// variables.
func NewFromEnv(ctx context.Context) (rmapi.Client, error) {
	config, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	return New(ctx, config)
}

// NormalizeEndpoint applies the endpoint defaults used by New.
func NormalizeEndpoint(endpoint string) (string, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return rmapi.DefaultAPIEndpoint, nil
	}

	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", rmapi.ErrInvalidEndpoint, endpoint)
	}

	return endpoint, nil
}
