package rmapi_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/rmapi/pkg/rmapi"
)

func TestFetchError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *rmapi.FetchError
		expected string
	}{
		{
			name:     "not found",
			err:      &rmapi.FetchError{Reason: rmapi.ReasonNotFound, Kind: rmapi.KindCharacter, ID: 9999},
			expected: "character 9999 not found",
		},
		{
			name:     "malformed reference",
			err:      &rmapi.FetchError{Reason: rmapi.ReasonMalformedReference, Reference: "https://rickandmortyapi.com/api/character/"},
			expected: `malformed reference "https://rickandmortyapi.com/api/character/": no positive integer id`,
		},
		{
			name:     "page limit",
			err:      &rmapi.FetchError{Reason: rmapi.ReasonPageLimitExceeded, Path: "/episode", Limit: 10000},
			expected: "pagination of /episode exceeded 10000 pages",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestFetchError_Is(t *testing.T) {
	t.Parallel()

	notFound := fmt.Errorf("getting character: %w", &rmapi.FetchError{Reason: rmapi.ReasonNotFound, Kind: rmapi.KindCharacter, ID: 1})

	assert.ErrorIs(t, notFound, rmapi.ErrNotFound)
	assert.NotErrorIs(t, notFound, rmapi.ErrMalformedReference)
	assert.NotErrorIs(t, notFound, rmapi.ErrPageLimitExceeded)
	assert.True(t, rmapi.IsNotFound(notFound))

	limit := &rmapi.FetchError{Reason: rmapi.ReasonPageLimitExceeded}
	assert.ErrorIs(t, limit, rmapi.ErrPageLimitExceeded)
	assert.False(t, rmapi.IsNotFound(limit))
}

func TestFetchError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := &rmapi.TransportError{Kind: rmapi.TransportNotFound, Method: "GET", Path: "/character/9999", StatusCode: 404}
	err := &rmapi.FetchError{Reason: rmapi.ReasonNotFound, Kind: rmapi.KindCharacter, ID: 9999, Err: cause}

	var transportErr *rmapi.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, 404, transportErr.StatusCode)
}

func TestTransportError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *rmapi.TransportError
		expected string
	}{
		{
			name:     "with detail",
			err:      &rmapi.TransportError{Kind: rmapi.TransportNotFound, Method: "GET", Path: "/character/9999", StatusCode: 404, Detail: "Character not found"},
			expected: "GET /character/9999: Character not found (status: 404)",
		},
		{
			name:     "status only",
			err:      &rmapi.TransportError{Kind: rmapi.TransportServerError, Method: "GET", Path: "/episode", StatusCode: 502},
			expected: "GET /episode: server_error (status: 502)",
		},
		{
			name:     "network",
			err:      &rmapi.TransportError{Kind: rmapi.TransportNetwork, Method: "GET", Path: "/location", Err: errors.New("connection refused")},
			expected: "GET /location: network: connection refused",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, rmapi.IsNotFound(&rmapi.TransportError{Kind: rmapi.TransportNotFound}))
	assert.False(t, rmapi.IsNotFound(&rmapi.TransportError{Kind: rmapi.TransportTimeout}))
	assert.False(t, rmapi.IsNotFound(errors.New("other")))
	assert.False(t, rmapi.IsNotFound(nil))
}

func TestDecodeError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("parsing: %w", &rmapi.DecodeError{Kind: rmapi.KindLocation, Field: "id", Err: rmapi.ErrMissingField})

	assert.True(t, rmapi.IsDecodeError(err))
	assert.False(t, rmapi.IsTransportError(err))
	assert.ErrorIs(t, err, rmapi.ErrMissingField)
	assert.Equal(t, `parsing: decoding location field "id": missing required field`, err.Error())
}

func TestParseAPIError(t *testing.T) {
	t.Parallel()

	apiErr, err := rmapi.ParseAPIError([]byte(`{"error":"There is nothing here"}`))
	require.NoError(t, err)
	assert.Equal(t, "There is nothing here", apiErr.Error())

	_, err = rmapi.ParseAPIError([]byte(`<html>`))
	require.Error(t, err)
}
