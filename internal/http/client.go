// Package http is the JSON-over-HTTP transport used by the resource clients.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/rmapi/internal/constants"
	"github.com/fivetwenty-io/rmapi/pkg/rmapi"
)

const defaultUserAgent = "rmapi-go/1.0"

// Request describes one API call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
}

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client performs API requests against a base URL. It is safe for
// concurrent use and holds no per-request state.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	logger       rmapi.Logger
	interceptors *rmapi.InterceptorChain
	userAgent    string
	debug        bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger rmapi.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the per-exchange timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithRetryConfig enables retries of transient failures.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithInterceptors sets the interceptor chain run around every request.
func WithInterceptors(chain *rmapi.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient = httpClient
	}
}

// NewClient creates a new HTTP client. Retries are off unless
// WithRetryConfig is given.
func NewClient(baseURL string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   retryClient,
		logger:       rmapi.NoOpLogger{},
		interceptors: rmapi.NewInterceptorChain(),
		userAgent:    defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.debug {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Do performs the request. Non-2xx responses are returned together with a
// *rmapi.TransportError so callers can inspect the status code.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	intercepted := &rmapi.Request{
		Method:   req.Method,
		Path:     req.Path,
		Headers:  make(http.Header),
		Metadata: make(map[string]interface{}),
	}

	for key, value := range req.Headers {
		intercepted.Headers.Set(key, value)
	}

	err := c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, c.buildURL(req), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	for key, values := range intercepted.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	resp, err := c.exchange(httpReq, req)

	interceptedResp := &rmapi.Response{Error: err}
	if resp != nil {
		interceptedResp.StatusCode = resp.StatusCode
		interceptedResp.Headers = resp.Headers
		interceptedResp.Body = resp.Body
	}

	interceptErr := c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, interceptedResp)
	if err == nil && interceptErr != nil {
		return resp, interceptErr
	}

	return resp, err
}

func (c *Client) exchange(httpReq *retryablehttp.Request, req *Request) (*Response, error) {
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyError(req, err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, classifyError(req, fmt.Errorf("reading response body: %w", err))
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		return resp, statusError(req, httpResp.StatusCode, body)
	}

	return resp, nil
}

func (c *Client) buildURL(req *Request) string {
	path := req.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	target := c.baseURL + path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	return target
}

func statusError(req *Request, statusCode int, body []byte) *rmapi.TransportError {
	transportErr := &rmapi.TransportError{
		Method:     req.Method,
		Path:       req.Path,
		StatusCode: statusCode,
		Err:        fmt.Errorf("%w: %d", rmapi.ErrUnexpectedStatus, statusCode),
	}

	apiErr, err := rmapi.ParseAPIError(body)
	if err == nil && apiErr.Message != "" {
		transportErr.Detail = apiErr.Message
		transportErr.Err = apiErr
	}

	switch {
	case statusCode == http.StatusNotFound:
		transportErr.Kind = rmapi.TransportNotFound
	case statusCode >= http.StatusInternalServerError:
		transportErr.Kind = rmapi.TransportServerError
	default:
		transportErr.Kind = rmapi.TransportClientError
	}

	return transportErr
}

func classifyError(req *Request, err error) *rmapi.TransportError {
	kind := rmapi.TransportNetwork

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = rmapi.TransportTimeout
	}

	return &rmapi.TransportError{
		Kind:   kind,
		Method: req.Method,
		Path:   req.Path,
		Err:    err,
	}
}

// leveledLogger adapts rmapi.Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger rmapi.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, toFields(keysAndValues))
}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}
