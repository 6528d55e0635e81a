package client

import (
	"context"
	"fmt"

	http_internal "github.com/fivetwenty-io/rmapi/internal/http"
	"github.com/fivetwenty-io/rmapi/pkg/rmapi"
)

// LocationsClient implements the rmapi.LocationsClient interface.
type LocationsClient struct {
	*entityClient[rmapi.Location, rmapi.LocationFilter]

	characters *entityClient[rmapi.Character, rmapi.CharacterFilter]
	resolve    *rmapi.ResolveOptions
}

// NewLocationsClient creates a new LocationsClient.
func NewLocationsClient(httpClient *http_internal.Client, pagination *rmapi.PaginationOptions, resolve *rmapi.ResolveOptions) *LocationsClient {
	return &LocationsClient{
		entityClient: newEntityClient[rmapi.Location, rmapi.LocationFilter](httpClient, pagination),
		characters:   newEntityClient[rmapi.Character, rmapi.CharacterFilter](httpClient, pagination),
		resolve:      resolve,
	}
}

// GetWithReferences fetches a location and its residents.
func (c *LocationsClient) GetWithReferences(ctx context.Context, id int) (*rmapi.LocationWithResidents, error) {
	location, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	residents, err := rmapi.ResolveReferences(ctx, location.Residents, c.characters.Get, c.resolve)
	if err != nil {
		return nil, fmt.Errorf("resolving residents of location %d: %w", id, err)
	}

	return &rmapi.LocationWithResidents{
		Location:  *location,
		Residents: residents,
	}, nil
}
