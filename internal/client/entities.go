package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	http_internal "github.com/fivetwenty-io/rmapi/internal/http"
	"github.com/fivetwenty-io/rmapi/pkg/rmapi"
)

// entityClient implements the operations shared by all entity kinds.
type entityClient[T rmapi.Entity, F rmapi.Filter] struct {
	httpClient *http_internal.Client
	kind       rmapi.Kind
	pagination *rmapi.PaginationOptions
}

func newEntityClient[T rmapi.Entity, F rmapi.Filter](httpClient *http_internal.Client, pagination *rmapi.PaginationOptions) *entityClient[T, F] {
	return &entityClient[T, F]{
		httpClient: httpClient,
		kind:       rmapi.KindOf[T](),
		pagination: pagination,
	}
}

// ListWithPath fetches one page of the listing at path.
func (c *entityClient[T, F]) ListWithPath(ctx context.Context, path string, params *rmapi.QueryParams) (*rmapi.Page[T], error) {
	resp, err := c.httpClient.Get(ctx, path, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing %ss: %w", c.kind, err)
	}

	page, err := rmapi.DecodePage[T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", c.kind, err)
	}

	return page, nil
}

// List fetches a single page.
func (c *entityClient[T, F]) List(ctx context.Context, params *rmapi.QueryParams) (*rmapi.Page[T], error) {
	return c.ListWithPath(ctx, c.kind.Path(), params)
}

// ListAll fetches every page, in order.
func (c *entityClient[T, F]) ListAll(ctx context.Context) ([]T, error) {
	all, err := rmapi.FetchAllPages[T](ctx, c, c.kind.Path(), nil, c.pagination)
	if err != nil {
		return nil, fmt.Errorf("listing all %ss: %w", c.kind, err)
	}

	return all, nil
}

// Filter fetches the first page matching filter. The API answers 404 when
// nothing matches, which is reported as an empty result.
func (c *entityClient[T, F]) Filter(ctx context.Context, filter F) ([]T, error) {
	page, err := c.List(ctx, filter.Params())
	if err != nil {
		if rmapi.IsNotFound(err) {
			return []T{}, nil
		}

		return nil, fmt.Errorf("filtering %ss: %w", c.kind, err)
	}

	return page.Results, nil
}

// Get fetches one entity by id.
func (c *entityClient[T, F]) Get(ctx context.Context, id int) (*T, error) {
	if id <= 0 {
		return nil, fmt.Errorf("getting %s: %w: %d", c.kind, rmapi.ErrInvalidID, id)
	}

	path := c.kind.Path() + "/" + strconv.Itoa(id)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		if rmapi.IsNotFound(err) {
			return nil, &rmapi.FetchError{Reason: rmapi.ReasonNotFound, Kind: c.kind, ID: id, Err: err}
		}

		return nil, fmt.Errorf("getting %s %d: %w", c.kind, id, err)
	}

	entity, err := rmapi.Decode[T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", c.kind, err)
	}

	return entity, nil
}

// GetMany fetches several entities with one request to the multi-id
// endpoint. Results follow the server's order.
func (c *entityClient[T, F]) GetMany(ctx context.Context, ids []int) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}

	parts := make([]string, 0, len(ids))

	for _, id := range ids {
		if id <= 0 {
			return nil, fmt.Errorf("getting %ss: %w: %d", c.kind, rmapi.ErrInvalidID, id)
		}

		parts = append(parts, strconv.Itoa(id))
	}

	path := c.kind.Path() + "/" + strings.Join(parts, ",")

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting %ss %s: %w", c.kind, strings.Join(parts, ","), err)
	}

	entities, err := rmapi.DecodeList[T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", c.kind, err)
	}

	return entities, nil
}
