// Package rmapi provides types, interfaces, and helpers for working with the
// Rick and Morty catalog API.
//
// # Overview
//
// The rmapi package defines the entity types (Character, Episode, Location),
// the listing envelope (Page), and the interfaces for per-kind clients
// (CharactersClient, EpisodesClient, LocationsClient). A concrete
// implementation is provided by the rmclient package, which wires
// configuration and transport. Most consumers should import rmclient to
// construct a client and then use the interfaces exposed here.
//
// Getting a client
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
//	  cli, err := rmclient.New(ctx, &rmapi.Config{})
//	  if err != nil { log.Fatal(err) }
//
//	  // Every character, across all pages
//	  characters, err := cli.Characters().ListAll(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = characters
//	}
//
// # Queries and pagination
//
// Filters are typed per kind (CharacterFilter, EpisodeFilter,
// LocationFilter) with pointer fields; a nil field is never sent.
// Filter returns the first matching page only. FetchAllPages,
// NewPaginationIterator and StreamPages walk a listing from page 1 until
// the server stops advertising a next page, bounded by
// PaginationOptions.MaxPages.
//
// # References
//
// Entities point at each other with URLs whose last path segment is the
// id. ResolveReferences parses those ids, fetches the entities
// concurrently and returns them in reference order, or fails as a whole.
//
// # Errors
//
// Failures are typed: DecodeError for malformed documents, TransportError
// for HTTP failures, and FetchError for not-found ids, malformed
// references and exhausted page limits. Use errors.Is with ErrNotFound,
// ErrMalformedReference and ErrPageLimitExceeded, or the IsNotFound helper.
package rmapi
