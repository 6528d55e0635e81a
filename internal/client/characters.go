package client

import (
	"context"
	"fmt"

	http_internal "github.com/fivetwenty-io/rmapi/internal/http"
	"github.com/fivetwenty-io/rmapi/pkg/rmapi"
)

// CharactersClient implements the rmapi.CharactersClient interface.
type CharactersClient struct {
	*entityClient[rmapi.Character, rmapi.CharacterFilter]

	episodes *entityClient[rmapi.Episode, rmapi.EpisodeFilter]
	resolve  *rmapi.ResolveOptions
}

// NewCharactersClient creates a new CharactersClient.
func NewCharactersClient(httpClient *http_internal.Client, pagination *rmapi.PaginationOptions, resolve *rmapi.ResolveOptions) *CharactersClient {
	return &CharactersClient{
		entityClient: newEntityClient[rmapi.Character, rmapi.CharacterFilter](httpClient, pagination),
		episodes:     newEntityClient[rmapi.Episode, rmapi.EpisodeFilter](httpClient, pagination),
		resolve:      resolve,
	}
}

// GetWithEpisodes fetches a character and the episodes it appears in.
func (c *CharactersClient) GetWithEpisodes(ctx context.Context, id int) (*rmapi.CharacterWithEpisodes, error) {
	character, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	episodes, err := rmapi.ResolveReferences(ctx, character.Episode, c.episodes.Get, c.resolve)
	if err != nil {
		return nil, fmt.Errorf("resolving episodes of character %d: %w", id, err)
	}

	return &rmapi.CharacterWithEpisodes{
		Character: *character,
		Episodes:  episodes,
	}, nil
}
