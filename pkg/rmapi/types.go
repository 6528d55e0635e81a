package rmapi

// Kind identifies one of the catalog's entity collections.
type Kind string

// Entity kinds exposed by the catalog.
const (
	KindCharacter Kind = "character"
	KindEpisode   Kind = "episode"
	KindLocation  Kind = "location"
)

// Path returns the collection endpoint path for the kind.
func (k Kind) Path() string {
	return "/" + string(k)
}

func (k Kind) String() string {
	return string(k)
}

// Status is a character's life status as reported upstream.
type Status string

// Character statuses. Upstream spells the unknown status in lower case.
const (
	StatusAlive   Status = "Alive"
	StatusDead    Status = "Dead"
	StatusUnknown Status = "unknown"
)

// Reference is a named pointer to another entity. The zero value (empty
// name, empty URL) is the valid "unknown" state.
type Reference struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url"  yaml:"url"`
}

// IsUnknown reports whether the reference points nowhere.
func (r Reference) IsUnknown() bool {
	return r.URL == ""
}

// ID extracts the referenced entity id from the reference URL.
func (r Reference) ID() (int, error) {
	return ParseReferenceID(r.URL)
}

// Character represents a character resource.
type Character struct {
	ID       int       `json:"id"       yaml:"id"`
	Name     string    `json:"name"     yaml:"name"`
	Status   Status    `json:"status"   yaml:"status"`
	Species  string    `json:"species"  yaml:"species"`
	Type     string    `json:"type"     yaml:"type"`
	Gender   string    `json:"gender"   yaml:"gender"`
	Origin   Reference `json:"origin"   yaml:"origin"`
	Location Reference `json:"location" yaml:"location"`
	Image    string    `json:"image"    yaml:"image"`
	Episode  []string  `json:"episode"  yaml:"episode"`
	URL      string    `json:"url"      yaml:"url"`
	Created  string    `json:"created"  yaml:"created"`
}

// EntityID returns the character id.
func (c Character) EntityID() int { return c.ID }

// EntityKind returns KindCharacter.
func (Character) EntityKind() Kind { return KindCharacter }

// Episode represents an episode resource. Code is the "S01E01" style
// episode code, sent as "episode" on the wire.
type Episode struct {
	ID         int      `json:"id"         yaml:"id"`
	Name       string   `json:"name"       yaml:"name"`
	AirDate    string   `json:"air_date"   yaml:"air_date"`
	Code       string   `json:"episode"    yaml:"episode"`
	Characters []string `json:"characters" yaml:"characters"`
	URL        string   `json:"url"        yaml:"url"`
	Created    string   `json:"created"    yaml:"created"`
}

// EntityID returns the episode id.
func (e Episode) EntityID() int { return e.ID }

// EntityKind returns KindEpisode.
func (Episode) EntityKind() Kind { return KindEpisode }

// Location represents a location resource.
type Location struct {
	ID        int      `json:"id"        yaml:"id"`
	Name      string   `json:"name"      yaml:"name"`
	Type      string   `json:"type"      yaml:"type"`
	Dimension string   `json:"dimension" yaml:"dimension"`
	Residents []string `json:"residents" yaml:"residents"`
	URL       string   `json:"url"       yaml:"url"`
	Created   string   `json:"created"   yaml:"created"`
}

// EntityID returns the location id.
func (l Location) EntityID() int { return l.ID }

// EntityKind returns KindLocation.
func (Location) EntityKind() Kind { return KindLocation }

// Entity is the set of catalog resource types.
type Entity interface {
	Character | Episode | Location

	EntityID() int
	EntityKind() Kind
}

// KindOf returns the kind of the entity type T.
func KindOf[T Entity]() Kind {
	var zero T

	return zero.EntityKind()
}

// Info represents pagination information.
type Info struct {
	Count int     `json:"count"          yaml:"count"`
	Pages int     `json:"pages"          yaml:"pages"`
	Next  *string `json:"next,omitempty" yaml:"next,omitempty"`
	Prev  *string `json:"prev,omitempty" yaml:"prev,omitempty"`
}

// HasNext reports whether the server advertised a following page.
func (i Info) HasNext() bool {
	return i.Next != nil && *i.Next != ""
}

// Page represents one page of a paginated listing.
type Page[T any] struct {
	Info    Info `json:"info"    yaml:"info"`
	Results []T  `json:"results" yaml:"results"`
}

// CharacterList represents a page of Character resources.
type CharacterList = Page[Character]

// EpisodeList represents a page of Episode resources.
type EpisodeList = Page[Episode]

// LocationList represents a page of Location resources.
type LocationList = Page[Location]

// EpisodeWithCharacters is an episode together with its resolved cast, in
// the order the episode lists them.
type EpisodeWithCharacters struct {
	Episode    Episode     `json:"episode"    yaml:"episode"`
	Characters []Character `json:"characters" yaml:"characters"`
}

// LocationWithResidents is a location together with its resolved residents.
type LocationWithResidents struct {
	Location  Location    `json:"location"  yaml:"location"`
	Residents []Character `json:"residents" yaml:"residents"`
}

// CharacterWithEpisodes is a character together with the episodes it
// appears in, first to last.
type CharacterWithEpisodes struct {
	Character Character `json:"character" yaml:"character"`
	Episodes  []Episode `json:"episodes"  yaml:"episodes"`
}

// Root represents the API root document listing collection endpoints.
type Root struct {
	Characters string `json:"characters" yaml:"characters"`
	Locations  string `json:"locations"  yaml:"locations"`
	Episodes   string `json:"episodes"   yaml:"episodes"`
}
