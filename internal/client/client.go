package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/rmapi/internal/constants"
	"github.com/fivetwenty-io/rmapi/internal/http"
	"github.com/fivetwenty-io/rmapi/pkg/rmapi"
)

// Static errors for err113 compliance.
var (
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
)

// Client implements the rmapi.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     rmapi.Logger

	// Resource clients
	characters *CharactersClient
	episodes   *EpisodesClient
	locations  *LocationsClient
}

// createInterceptorChain builds the interceptors config asks for.
func createInterceptorChain(config *rmapi.Config) *rmapi.InterceptorChain {
	chain := rmapi.NewInterceptorChain()
	chain.AddRequestInterceptor(rmapi.RequestIDInterceptor())
	chain.AddRequestInterceptor(rmapi.TimingInterceptor())

	if config.RateLimit > 0 {
		chain.AddRequestInterceptor(rmapi.RateLimitInterceptor(config.RateLimit))
	}

	if config.Logger != nil && config.Debug {
		chain.AddRequestInterceptor(rmapi.LoggingInterceptor(config.Logger))
		chain.AddResponseInterceptor(rmapi.LoggingResponseInterceptor(config.Logger))
	}

	if config.Metrics != nil {
		chain.AddResponseInterceptor(config.Metrics.ResponseInterceptor())
	}

	return chain
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *rmapi.Config) []http.Option {
	httpOpts := []http.Option{
		http.WithInterceptors(createInterceptorChain(config)),
	}

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a new catalog client. The endpoint must already be
// normalized; see rmclient.New.
func New(config *rmapi.Config) (*Client, error) {
	if config.APIEndpoint == "" {
		return nil, ErrAPIEndpointRequired
	}

	httpClient := http.NewClient(config.APIEndpoint, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		baseURL:    config.APIEndpoint,
		logger:     config.Logger,
	}

	client.initializeResourceClients(config)

	return client, nil
}

// initializeResourceClients initializes all resource clients.
func (c *Client) initializeResourceClients(config *rmapi.Config) {
	pagination := rmapi.DefaultPaginationOptions()
	if config.MaxPages > 0 {
		pagination.MaxPages = config.MaxPages
	}

	resolve := &rmapi.ResolveOptions{Concurrency: constants.DefaultResolveConcurrency}
	if config.Concurrency > 0 {
		resolve.Concurrency = config.Concurrency
	}

	c.characters = NewCharactersClient(c.httpClient, pagination, resolve)
	c.episodes = NewEpisodesClient(c.httpClient, pagination, resolve)
	c.locations = NewLocationsClient(c.httpClient, pagination, resolve)
}

// Characters implements rmapi.Client.
func (c *Client) Characters() rmapi.CharactersClient {
	return c.characters
}

// Episodes implements rmapi.Client.
func (c *Client) Episodes() rmapi.EpisodesClient {
	return c.episodes
}

// Locations implements rmapi.Client.
func (c *Client) Locations() rmapi.LocationsClient {
	return c.locations
}

// Root fetches the API root document.
func (c *Client) Root(ctx context.Context) (*rmapi.Root, error) {
	resp, err := c.httpClient.Get(ctx, constants.APIPathRoot, nil)
	if err != nil {
		return nil, fmt.Errorf("getting API root: %w", err)
	}

	var root rmapi.Root

	err = json.Unmarshal(resp.Body, &root)
	if err != nil {
		return nil, fmt.Errorf("parsing API root response: %w", err)
	}

	return &root, nil
}
