package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/rmapi/pkg/rmapi"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// catalogServer serves canned responses keyed by request URI.
type catalogServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string
}

func (s *catalogServer) requestLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.requests...)
}

const apiBase = "https://rickandmortyapi.com/api"

var (
	rick = rmapi.Character{
		ID: 1, Name: "Rick Sanchez", Status: rmapi.StatusAlive, Species: "Human", Gender: "Male",
		Origin:   rmapi.Reference{Name: "Earth (C-137)", URL: apiBase + "/location/1"},
		Location: rmapi.Reference{Name: "Citadel of Ricks", URL: apiBase + "/location/3"},
		Episode:  []string{apiBase + "/episode/1", apiBase + "/episode/2"},
		URL:      apiBase + "/character/1",
		Created:  "2017-11-04T18:48:46.250Z",
	}
	morty = rmapi.Character{
		ID: 2, Name: "Morty Smith", Status: rmapi.StatusAlive, Species: "Human", Gender: "Male",
		Episode: []string{apiBase + "/episode/1"},
		URL:     apiBase + "/character/2",
	}
	birdperson = rmapi.Character{
		ID: 47, Name: "Birdperson", Status: rmapi.StatusDead, Species: "Alien",
		Episode: []string{apiBase + "/episode/2"},
		URL:     apiBase + "/character/47",
	}
	pilot = rmapi.Episode{
		ID: 1, Name: "Pilot", AirDate: "December 2, 2013", Code: "S01E01",
		Characters: []string{apiBase + "/character/2", apiBase + "/character/1"},
		URL:        apiBase + "/episode/1",
	}
	earth = rmapi.Location{
		ID: 1, Name: "Earth (C-137)", Type: "Planet", Dimension: "Dimension C-137",
		Residents: []string{apiBase + "/character/1"},
		URL:       apiBase + "/location/1",
	}
)

func newCatalogServer(t *testing.T) *catalogServer {
	t.Helper()

	responses := map[string]interface{}{
		"/": rmapi.Root{
			Characters: apiBase + "/character",
			Locations:  apiBase + "/location",
			Episodes:   apiBase + "/episode",
		},
		"/character?page=1": rmapi.Page[rmapi.Character]{
			Info:    rmapi.Info{Count: 3, Pages: 2, Next: rmapi.String(apiBase + "/character?page=2")},
			Results: []rmapi.Character{rick, morty},
		},
		"/character?page=2": rmapi.Page[rmapi.Character]{
			Info:    rmapi.Info{Count: 3, Pages: 2, Prev: rmapi.String(apiBase + "/character?page=1")},
			Results: []rmapi.Character{birdperson},
		},
		"/character?name=rick&status=alive": rmapi.Page[rmapi.Character]{
			Info:    rmapi.Info{Count: 1, Pages: 1},
			Results: []rmapi.Character{rick},
		},
		"/character/1":   rick,
		"/character/2":   morty,
		"/character/1,2": []rmapi.Character{rick, morty},
		"/episode/1":     pilot,
		"/episode?episode=S01E01": rmapi.Page[rmapi.Episode]{
			Info:    rmapi.Info{Count: 1, Pages: 1},
			Results: []rmapi.Episode{pilot},
		},
		"/location/1": earth,
		"/location?page=1": rmapi.Page[rmapi.Location]{
			Info:    rmapi.Info{Count: 1, Pages: 1},
			Results: []rmapi.Location{earth},
		},
	}

	server := &catalogServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		server.mu.Lock()
		server.requests = append(server.requests, r.URL.RequestURI())
		server.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")

		body, ok := responses[r.URL.RequestURI()]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			body = map[string]string{"error": "There is nothing here"}
		}

		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)

	return server
}

// commandResult holds the captured output of one CLI invocation.
type commandResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the root command with a fresh viper state. The config
// file lives in configDir so runs never touch the user's home directory.
func runCLI(t *testing.T, configDir string, args ...string) commandResult {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	var stdout, stderr bytes.Buffer

	root := NewRootCommand("1.2.3", "abc123", "2026-10-18")
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--config", filepath.Join(configDir, "config.yml")))

	err := root.Execute()

	return commandResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
