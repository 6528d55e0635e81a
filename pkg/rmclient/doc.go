// Package rmclient is the entry point for constructing a catalog client
// that implements the rmapi.Client interface.
//
// It normalizes configuration and wires the HTTP transport, interceptors
// and resource clients behind the interfaces defined in the rmapi package.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/rmapi/pkg/rmapi"
//	  "github.com/fivetwenty-io/rmapi/pkg/rmclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Zero config talks to the public endpoint.
//	  cli, err := rmclient.New(ctx, &rmapi.Config{})
//	  if err != nil { log.Fatal(err) }
//
//	  // Or read RMAPI_* variables from the environment.
//	  cli, err = rmclient.NewFromEnv(ctx)
//	  if err != nil { log.Fatal(err) }
//
//	  pilot, err := cli.Episodes().GetWithReferences(ctx, 1)
//	  if err != nil { log.Fatal(err) }
//	  _ = pilot.Characters
//	}
//
// # Environment
//
// ConfigFromEnv reads RMAPI_API_ENDPOINT, RMAPI_HTTP_TIMEOUT,
// RMAPI_RETRY_MAX, RMAPI_RETRY_WAIT_MIN, RMAPI_RETRY_WAIT_MAX,
// RMAPI_RATE_LIMIT, RMAPI_CONCURRENCY, RMAPI_MAX_PAGES, RMAPI_DEBUG and
// RMAPI_USER_AGENT. Durations use time.ParseDuration syntax.
package rmclient
