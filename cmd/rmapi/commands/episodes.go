package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/rmapi/pkg/rmapi"
)

var episodeColumns = []string{"ID", "Code", "Name", "Air Date"}

// NewEpisodesCommand creates the episodes command group.
func NewEpisodesCommand() *cobra.Command {
	cfg := entityCommandConfig[rmapi.Episode, rmapi.EpisodeFilter]{
		use:     "episode",
		aliases: []string{"episodes", "ep"},
		plural:  "episodes",
		client: func(c rmapi.Client) rmapi.EntityClient[rmapi.Episode, rmapi.EpisodeFilter] {
			return c.Episodes()
		},
		columns: []string{"ID", "Code", "Name", "Air Date", "Characters"},
		row: func(episode rmapi.Episode) []string {
			return []string{
				strconv.Itoa(episode.ID),
				episode.Code,
				episode.Name,
				orNA(episode.AirDate),
				strconv.Itoa(len(episode.Characters)),
			}
		},
		details: episodeDetails,
		filterFlags: []filterFlag{
			{name: "name", usage: "match episodes whose name contains this value"},
			{name: "code", usage: "match on episode code, e.g. S01 or S01E01"},
		},
		filter: func(values map[string]*string) rmapi.EpisodeFilter {
			return rmapi.EpisodeFilter{
				Name: values["name"],
				Code: values["code"],
			}
		},
	}

	return newEntityCommand(cfg, getOptions{
		withFlag:  "with-characters",
		withUsage: "resolve the episode's characters",
		withRun:   runEpisodeWithCharacters,
	})
}

func episodeDetails(episode rmapi.Episode) [][]string {
	return [][]string{
		{"ID", strconv.Itoa(episode.ID)},
		{"Name", episode.Name},
		{"Code", orNA(episode.Code)},
		{"Air Date", orNA(episode.AirDate)},
		{"Characters", summarizeReferences(episode.Characters)},
		{"Created", orNA(episode.Created)},
	}
}

func episodeRows(episodes []rmapi.Episode) [][]string {
	rows := make([][]string, 0, len(episodes))
	for _, episode := range episodes {
		rows = append(rows, []string{strconv.Itoa(episode.ID), episode.Code, episode.Name, orNA(episode.AirDate)})
	}

	return rows
}

func runEpisodeWithCharacters(ctx context.Context, client rmapi.Client, w io.Writer, id int) error {
	result, err := client.Episodes().GetWithReferences(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get episode with characters: %w", err)
	}

	return render(w, result, func() error {
		err := renderProperties(w, episodeDetails(result.Episode))
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(w, "\nCharacters (%d):\n", len(result.Characters))

		return renderTable(w, characterColumns, characterRows(result.Characters))
	})
}
