package client

import (
	"context"
	"fmt"

	http_internal "github.com/fivetwenty-io/rmapi/internal/http"
	"github.com/fivetwenty-io/rmapi/pkg/rmapi"
)

// EpisodesClient implements the rmapi.EpisodesClient interface.
type EpisodesClient struct {
	*entityClient[rmapi.Episode, rmapi.EpisodeFilter]

	characters *entityClient[rmapi.Character, rmapi.CharacterFilter]
	resolve    *rmapi.ResolveOptions
}

// NewEpisodesClient creates a new EpisodesClient.
func NewEpisodesClient(httpClient *http_internal.Client, pagination *rmapi.PaginationOptions, resolve *rmapi.ResolveOptions) *EpisodesClient {
	return &EpisodesClient{
		entityClient: newEntityClient[rmapi.Episode, rmapi.EpisodeFilter](httpClient, pagination),
		characters:   newEntityClient[rmapi.Character, rmapi.CharacterFilter](httpClient, pagination),
		resolve:      resolve,
	}
}

// GetWithReferences fetches an episode and its characters, in the order
// the episode lists them. Any failed character fetch fails the call.
func (c *EpisodesClient) GetWithReferences(ctx context.Context, id int) (*rmapi.EpisodeWithCharacters, error) {
	episode, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	characters, err := rmapi.ResolveReferences(ctx, episode.Characters, c.characters.Get, c.resolve)
	if err != nil {
		return nil, fmt.Errorf("resolving characters of episode %d: %w", id, err)
	}

	return &rmapi.EpisodeWithCharacters{
		Episode:    *episode,
		Characters: characters,
	}, nil
}
