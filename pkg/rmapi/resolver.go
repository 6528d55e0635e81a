package rmapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ResolveOptions configures reference resolution.
type ResolveOptions struct {
	// Concurrency caps in-flight fetches; zero or less means no cap.
	Concurrency int
}

// ParseReferenceID extracts the id from a reference URL of the form
// ".../<kind>/<id>". Only the trailing path segment is considered and it
// must be a positive integer. A bare id with no path is malformed.
func ParseReferenceID(ref string) (int, error) {
	slash := strings.LastIndex(ref, "/")
	if slash < 0 {
		return 0, &FetchError{Reason: ReasonMalformedReference, Reference: ref}
	}

	segment := ref[slash+1:]

	id, err := strconv.ParseUint(segment, 10, strconv.IntSize-1)
	if err != nil || id == 0 {
		return 0, &FetchError{Reason: ReasonMalformedReference, Reference: ref, Err: err}
	}

	return int(id), nil
}

// ParseReferenceIDs parses every reference, failing on the first malformed one.
func ParseReferenceIDs(refs []string) ([]int, error) {
	ids := make([]int, 0, len(refs))

	for _, ref := range refs {
		id, err := ParseReferenceID(ref)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}

// ResolveReferences fetches the entities behind refs concurrently and
// returns them in the order of refs. All references are parsed before any
// fetch is issued, an empty refs slice issues no fetches, and the first
// failed fetch cancels the others and fails the whole call.
func ResolveReferences[T any](
	ctx context.Context,
	refs []string,
	fetch func(ctx context.Context, id int) (*T, error),
	options *ResolveOptions,
) ([]T, error) {
	if len(refs) == 0 {
		return []T{}, nil
	}

	ids, err := ParseReferenceIDs(refs)
	if err != nil {
		return nil, err
	}

	return ResolveIDs(ctx, ids, fetch, options)
}

// ResolveIDs is ResolveReferences for already-parsed ids.
func ResolveIDs[T any](
	ctx context.Context,
	ids []int,
	fetch func(ctx context.Context, id int) (*T, error),
	options *ResolveOptions,
) ([]T, error) {
	results := make([]T, len(ids))
	if len(ids) == 0 {
		return results, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	if options != nil && options.Concurrency > 0 {
		group.SetLimit(options.Concurrency)
	}

	for index, id := range ids {
		index, id := index, id
		group.Go(func() error {
			entity, err := fetch(groupCtx, id)
			if err != nil {
				return fmt.Errorf("resolving reference %d: %w", id, err)
			}

			if entity == nil {
				return fmt.Errorf("resolving reference %d: %w", id, ErrNotFound)
			}

			results[index] = *entity

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err
	}

	return results, nil
}
