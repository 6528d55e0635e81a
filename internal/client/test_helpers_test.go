package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/rmapi/pkg/rmapi"
)

// NewTestClient creates a new test client with the given base URL.
func NewTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := New(&rmapi.Config{APIEndpoint: baseURL})
	require.NoError(t, err)

	return client
}

// fakeAPI serves a small in-memory catalog shaped like the real API.
type fakeAPI struct {
	t *testing.T

	characters map[int]rmapi.Character
	episodes   map[int]rmapi.Episode
	locations  map[int]rmapi.Location
	pageSize   int
	// lastLinked drops the next link from this page on, while info.pages
	// still reports the full count.
	lastLinked int

	// fail answers 500 for the listed paths or request URIs.
	fail map[string]bool
	// delay slows down the listed paths.
	delay map[string]time.Duration

	mu       sync.Mutex
	requests []string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	api := &fakeAPI{
		t:          t,
		characters: make(map[int]rmapi.Character),
		episodes:   make(map[int]rmapi.Episode),
		locations:  make(map[int]rmapi.Location),
		pageSize:   2,
		fail:       make(map[string]bool),
		delay:      make(map[string]time.Duration),
	}

	names := []string{"Rick Sanchez", "Morty Smith", "Summer Smith", "Beth Smith", "Jerry Smith"}
	for index, name := range names {
		id := index + 1
		api.characters[id] = rmapi.Character{
			ID:       id,
			Name:     name,
			Status:   rmapi.StatusAlive,
			Species:  "Human",
			Origin:   rmapi.Reference{Name: "unknown"},
			Location: rmapi.Reference{Name: "Earth (C-137)", URL: "https://rickandmortyapi.com/api/location/1"},
			Episode:  []string{"https://rickandmortyapi.com/api/episode/1", "https://rickandmortyapi.com/api/episode/2"},
			URL:      fmt.Sprintf("https://rickandmortyapi.com/api/character/%d", id),
		}
	}

	api.episodes[1] = rmapi.Episode{
		ID: 1, Name: "Pilot", AirDate: "December 2, 2013", Code: "S01E01",
		Characters: []string{
			"https://rickandmortyapi.com/api/character/3",
			"https://rickandmortyapi.com/api/character/1",
			"https://rickandmortyapi.com/api/character/2",
		},
	}
	api.episodes[2] = rmapi.Episode{
		ID: 2, Name: "Lawnmower Dog", AirDate: "December 9, 2013", Code: "S01E02",
		Characters: []string{"https://rickandmortyapi.com/api/character/1"},
	}
	api.episodes[3] = rmapi.Episode{ID: 3, Name: "Anatomy Park", Code: "S01E03", Characters: []string{}}

	api.locations[1] = rmapi.Location{
		ID: 1, Name: "Earth (C-137)", Type: "Planet", Dimension: "Dimension C-137",
		Residents: []string{
			"https://rickandmortyapi.com/api/character/1",
			"https://rickandmortyapi.com/api/character/2",
		},
	}
	api.locations[2] = rmapi.Location{ID: 2, Name: "Abadango", Type: "Cluster", Dimension: "unknown", Residents: []string{}}

	return api
}

func (a *fakeAPI) start() *httptest.Server {
	server := httptest.NewServer(a)
	a.t.Cleanup(server.Close)

	return server
}

func (a *fakeAPI) requestLog() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]string(nil), a.requests...)
}

func (a *fakeAPI) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	a.mu.Lock()
	a.requests = append(a.requests, request.URL.RequestURI())
	failing := a.fail[request.URL.Path] || a.fail[request.URL.RequestURI()]
	delay := a.delay[request.URL.Path]
	a.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	if failing {
		writeJSON(writer, http.StatusInternalServerError, map[string]string{"error": "portal fluid depleted"})

		return
	}

	segments := strings.Split(strings.Trim(request.URL.Path, "/"), "/")

	switch segments[0] {
	case "":
		writeJSON(writer, http.StatusOK, rmapi.Root{
			Characters: "https://rickandmortyapi.com/api/character",
			Locations:  "https://rickandmortyapi.com/api/location",
			Episodes:   "https://rickandmortyapi.com/api/episode",
		})
	case "character":
		serveKind(writer, request, segments, a.characters, a.pageSize, a.lastLinked, matchCharacter)
	case "episode":
		serveKind(writer, request, segments, a.episodes, a.pageSize, a.lastLinked, matchEpisode)
	case "location":
		serveKind(writer, request, segments, a.locations, a.pageSize, a.lastLinked, matchLocation)
	default:
		writeJSON(writer, http.StatusNotFound, map[string]string{"error": "There is nothing here"})
	}
}

func serveKind[T any](
	writer http.ResponseWriter,
	request *http.Request,
	segments []string,
	store map[int]T,
	pageSize int,
	lastLinked int,
	match func(T, map[string]string) bool,
) {
	if len(segments) > 1 {
		serveByID(writer, segments[1], store)

		return
	}

	filters := make(map[string]string)

	for key := range request.URL.Query() {
		if key != "page" {
			filters[key] = request.URL.Query().Get(key)
		}
	}

	matched := make([]T, 0)

	for id := 1; id <= len(store); id++ {
		entity, ok := store[id]
		if ok && match(entity, filters) {
			matched = append(matched, entity)
		}
	}

	if len(matched) == 0 {
		writeJSON(writer, http.StatusNotFound, map[string]string{"error": "There is nothing here"})

		return
	}

	page := 1
	if raw := request.URL.Query().Get("page"); raw != "" {
		page, _ = strconv.Atoi(raw)
	}

	pages := (len(matched) + pageSize - 1) / pageSize
	if page < 1 || page > pages {
		writeJSON(writer, http.StatusNotFound, map[string]string{"error": "There is nothing here"})

		return
	}

	info := rmapi.Info{Count: len(matched), Pages: pages}
	if page < pages && (lastLinked == 0 || page < lastLinked) {
		info.Next = rmapi.String(fmt.Sprintf("https://rickandmortyapi.com/api%s?page=%d", request.URL.Path, page+1))
	}

	if page > 1 {
		info.Prev = rmapi.String(fmt.Sprintf("https://rickandmortyapi.com/api%s?page=%d", request.URL.Path, page-1))
	}

	end := min(page*pageSize, len(matched))

	writeJSON(writer, http.StatusOK, rmapi.Page[T]{Info: info, Results: matched[(page-1)*pageSize : end]})
}

func serveByID[T any](writer http.ResponseWriter, rawIDs string, store map[int]T) {
	parts := strings.Split(rawIDs, ",")

	if len(parts) == 1 {
		id, err := strconv.Atoi(parts[0])
		if err != nil {
			writeJSON(writer, http.StatusInternalServerError, map[string]string{"error": "Hey! you must provide an id"})

			return
		}

		entity, ok := store[id]
		if !ok {
			writeJSON(writer, http.StatusNotFound, map[string]string{"error": "Character not found"})

			return
		}

		writeJSON(writer, http.StatusOK, entity)

		return
	}

	found := make([]T, 0, len(parts))

	for _, part := range parts {
		id, _ := strconv.Atoi(part)
		if entity, ok := store[id]; ok {
			found = append(found, entity)
		}
	}

	writeJSON(writer, http.StatusOK, found)
}

func matchCharacter(character rmapi.Character, filters map[string]string) bool {
	for key, value := range filters {
		var field string

		switch key {
		case "name":
			field = character.Name
		case "status":
			field = string(character.Status)
		case "species":
			field = character.Species
		default:
			return false
		}

		if !strings.Contains(strings.ToLower(field), strings.ToLower(value)) {
			return false
		}
	}

	return true
}

func matchEpisode(episode rmapi.Episode, filters map[string]string) bool {
	for key, value := range filters {
		var field string

		switch key {
		case "name":
			field = episode.Name
		case "episode":
			field = episode.Code
		default:
			return false
		}

		if !strings.Contains(strings.ToLower(field), strings.ToLower(value)) {
			return false
		}
	}

	return true
}

func matchLocation(location rmapi.Location, filters map[string]string) bool {
	for key, value := range filters {
		var field string

		switch key {
		case "name":
			field = location.Name
		case "type":
			field = location.Type
		case "dimension":
			field = location.Dimension
		default:
			return false
		}

		if !strings.Contains(strings.ToLower(field), strings.ToLower(value)) {
			return false
		}
	}

	return true
}

func writeJSON(writer http.ResponseWriter, status int, body interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(body)
}
