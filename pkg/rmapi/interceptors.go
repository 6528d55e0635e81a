package rmapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-Id"

// Request is the view of an outgoing exchange that interceptors see and
// may modify. Metadata carries values from request to response hooks.
type Request struct {
	Method   string
	Path     string
	Headers  http.Header
	Metadata map[string]interface{}
}

// Response is the outcome of an exchange. Error is set for transport
// failures and non-2xx statuses alike.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// RequestInterceptor runs before the exchange. A non-nil error aborts it.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor runs after the exchange, including failed ones.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// InterceptorChain runs hooks in registration order. The zero value is
// an empty chain.
type InterceptorChain struct {
	onRequest  []RequestInterceptor
	onResponse []ResponseInterceptor
}

// NewInterceptorChain returns an empty chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{}
}

// AddRequestInterceptor appends a request hook.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) {
	c.onRequest = append(c.onRequest, interceptor)
}

// AddResponseInterceptor appends a response hook.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) {
	c.onResponse = append(c.onResponse, interceptor)
}

// ExecuteRequestInterceptors runs the request hooks, stopping at the first
// error.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *Request) error {
	for index, hook := range c.onRequest {
		err := hook(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor %d: %w", index, err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs the response hooks, stopping at the
// first error.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *Request, resp *Response) error {
	for index, hook := range c.onResponse {
		err := hook(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response interceptor %d: %w", index, err)
		}
	}

	return nil
}

// LoggingInterceptor logs requests.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		logger.Debug("API Request", map[string]interface{}{
			"method":     req.Method,
			"path":       req.Path,
			"request_id": req.Headers.Get(RequestIDHeader),
		})

		return nil
	}
}

// LoggingResponseInterceptor logs responses.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		fields := map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
			"request_id":  req.Headers.Get(RequestIDHeader),
		}

		if startTime, ok := req.Metadata["start_time"].(time.Time); ok {
			fields["duration_ms"] = time.Since(startTime).Milliseconds()
		}

		if resp.Error != nil {
			fields["error"] = resp.Error.Error()
			logger.Error("API Response Error", fields)
		} else {
			logger.Debug("API Response", fields)
		}

		return nil
	}
}

// RateLimitInterceptor implements client-side rate limiting. Requests wait
// for a token or fail when ctx is done first.
func RateLimitInterceptor(requestsPerSecond float64) RequestInterceptor {
	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)

	return func(ctx context.Context, req *Request) error {
		err := limiter.Wait(ctx)
		if err != nil {
			return fmt.Errorf("waiting for rate limiter: %w", err)
		}

		return nil
	}
}

// RequestIDInterceptor stamps each request with a fresh correlation id
// unless one is already set.
func RequestIDInterceptor() RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		if req.Headers.Get(RequestIDHeader) == "" {
			req.Headers.Set(RequestIDHeader, uuid.NewString())
		}

		return nil
	}
}

// HeaderInterceptor sets fixed headers on every request, replacing any
// value already present.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	fixed := make(http.Header, len(headers))
	for key, value := range headers {
		fixed.Set(key, value)
	}

	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header, len(fixed))
		}

		for key, values := range fixed {
			req.Headers[key] = append([]string(nil), values...)
		}

		return nil
	}
}

// TimingInterceptor records the request start time in the metadata for
// response interceptors that report latency.
func TimingInterceptor() RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata["start_time"] = time.Now()

		return nil
	}
}
