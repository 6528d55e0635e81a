package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/rmapi/pkg/rmapi"
)

// NewCharactersCommand creates the characters command group.
func NewCharactersCommand() *cobra.Command {
	cfg := entityCommandConfig[rmapi.Character, rmapi.CharacterFilter]{
		use:     "character",
		aliases: []string{"characters", "char"},
		plural:  "characters",
		client: func(c rmapi.Client) rmapi.EntityClient[rmapi.Character, rmapi.CharacterFilter] {
			return c.Characters()
		},
		columns: []string{"ID", "Name", "Status", "Species", "Gender", "Location", "Episodes"},
		row: func(character rmapi.Character) []string {
			return []string{
				strconv.Itoa(character.ID),
				character.Name,
				titleCase(string(character.Status)),
				orNA(character.Species),
				orNA(character.Gender),
				referenceName(character.Location),
				strconv.Itoa(len(character.Episode)),
			}
		},
		details: characterDetails,
		filterFlags: []filterFlag{
			{name: "name", usage: "match characters whose name contains this value"},
			{name: "status", usage: "alive, dead or unknown"},
			{name: "species", usage: "match on species"},
			{name: "type", usage: "match on subspecies or type"},
			{name: "gender", usage: "female, male, genderless or unknown"},
		},
		filter: func(values map[string]*string) rmapi.CharacterFilter {
			return rmapi.CharacterFilter{
				Name:    values["name"],
				Status:  values["status"],
				Species: values["species"],
				Type:    values["type"],
				Gender:  values["gender"],
			}
		},
	}

	return newEntityCommand(cfg, getOptions{
		withFlag:  "with-episodes",
		withUsage: "resolve the episodes the character appears in",
		withRun:   runCharacterWithEpisodes,
	})
}

func characterDetails(character rmapi.Character) [][]string {
	return [][]string{
		{"ID", strconv.Itoa(character.ID)},
		{"Name", character.Name},
		{"Status", titleCase(string(character.Status))},
		{"Species", orNA(character.Species)},
		{"Type", orNA(character.Type)},
		{"Gender", orNA(character.Gender)},
		{"Origin", referenceName(character.Origin)},
		{"Location", referenceName(character.Location)},
		{"Episodes", summarizeReferences(character.Episode)},
		{"Image", orNA(character.Image)},
		{"Created", orNA(character.Created)},
	}
}

func runCharacterWithEpisodes(ctx context.Context, client rmapi.Client, w io.Writer, id int) error {
	result, err := client.Characters().GetWithEpisodes(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get character with episodes: %w", err)
	}

	return render(w, result, func() error {
		err := renderProperties(w, characterDetails(result.Character))
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(w, "\nEpisodes (%d):\n", len(result.Episodes))

		return renderTable(w, episodeColumns, episodeRows(result.Episodes))
	})
}

// characterColumns and characterRows render resolved casts and residents.
var characterColumns = []string{"ID", "Name", "Status", "Species"}

func characterRows(characters []rmapi.Character) [][]string {
	rows := make([][]string, 0, len(characters))
	for _, character := range characters {
		rows = append(rows, []string{
			strconv.Itoa(character.ID),
			character.Name,
			titleCase(string(character.Status)),
			orNA(character.Species),
		})
	}

	return rows
}
