package rmapi

import (
	"context"
	"time"
)

// DefaultAPIEndpoint is the public catalog endpoint.
const DefaultAPIEndpoint = "https://rickandmortyapi.com/api"

// EntityClient is the surface shared by every entity kind.
type EntityClient[T Entity, F Filter] interface {
	// ListAll follows pagination to the end and returns every entity.
	ListAll(ctx context.Context) ([]T, error)
	// List fetches a single page of the listing.
	List(ctx context.Context, params *QueryParams) (*Page[T], error)
	// Filter returns the first page of entities matching filter. It does
	// not paginate; use List with WithPage for further pages. The API
	// answers 404 when nothing matches, so a 404 is returned as an empty,
	// non-nil slice rather than a *TransportError. Other failures are
	// returned as errors.
	Filter(ctx context.Context, filter F) ([]T, error)
	// Get fetches one entity by id.
	Get(ctx context.Context, id int) (*T, error)
	// GetMany fetches several entities with one request.
	GetMany(ctx context.Context, ids []int) ([]T, error)
}

// CharactersClient provides character operations.
type CharactersClient interface {
	EntityClient[Character, CharacterFilter]

	// GetWithEpisodes fetches a character and resolves its episode list.
	GetWithEpisodes(ctx context.Context, id int) (*CharacterWithEpisodes, error)
}

// EpisodesClient provides episode operations.
type EpisodesClient interface {
	EntityClient[Episode, EpisodeFilter]

	// GetWithReferences fetches an episode and resolves its characters.
	GetWithReferences(ctx context.Context, id int) (*EpisodeWithCharacters, error)
}

// LocationsClient provides location operations.
type LocationsClient interface {
	EntityClient[Location, LocationFilter]

	// GetWithReferences fetches a location and resolves its residents.
	GetWithReferences(ctx context.Context, id int) (*LocationWithResidents, error)
}

// Client is the catalog client.
type Client interface {
	Characters() CharactersClient
	Episodes() EpisodesClient
	Locations() LocationsClient

	// Root fetches the API root document.
	Root(ctx context.Context) (*Root, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
//
// # Timeouts and retries
//
// Per-request deadlines should be set through the context passed to client
// methods. HTTPTimeout bounds each individual HTTP exchange. The client does
// not retry unless RetryMax is positive; a failed request otherwise fails
// the operation that issued it.
type Config struct {
	// APIEndpoint: base URL of the API. Empty means DefaultAPIEndpoint.
	// rmclient.New trims a trailing slash and adds "https://" when no
	// scheme is present.
	APIEndpoint string

	// HTTPTimeout: per-exchange timeout. Zero uses the default.
	HTTPTimeout time.Duration
	// RetryMax: retries for transient failures (>=500, 429, connection
	// errors). Zero disables retries.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration

	// RateLimit: requests per second across the client. Zero disables it.
	RateLimit float64
	// Concurrency: cap on concurrent fetches while resolving references.
	// Zero uses the default.
	Concurrency int
	// MaxPages: pagination safety cap. Zero uses DefaultMaxPages.
	MaxPages int

	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Metrics: optional Prometheus instrumentation for HTTP exchanges.
	Metrics *Metrics
}
