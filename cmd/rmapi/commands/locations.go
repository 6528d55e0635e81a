package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/rmapi/pkg/rmapi"
)

// NewLocationsCommand creates the locations command group.
func NewLocationsCommand() *cobra.Command {
	cfg := entityCommandConfig[rmapi.Location, rmapi.LocationFilter]{
		use:     "location",
		aliases: []string{"locations", "loc"},
		plural:  "locations",
		client: func(c rmapi.Client) rmapi.EntityClient[rmapi.Location, rmapi.LocationFilter] {
			return c.Locations()
		},
		columns: []string{"ID", "Name", "Type", "Dimension", "Residents"},
		row: func(location rmapi.Location) []string {
			return []string{
				strconv.Itoa(location.ID),
				location.Name,
				orNA(location.Type),
				orNA(location.Dimension),
				strconv.Itoa(len(location.Residents)),
			}
		},
		details: locationDetails,
		filterFlags: []filterFlag{
			{name: "name", usage: "match locations whose name contains this value"},
			{name: "type", usage: "match on location type, e.g. planet"},
			{name: "dimension", usage: "match on dimension"},
		},
		filter: func(values map[string]*string) rmapi.LocationFilter {
			return rmapi.LocationFilter{
				Name:      values["name"],
				Type:      values["type"],
				Dimension: values["dimension"],
			}
		},
	}

	return newEntityCommand(cfg, getOptions{
		withFlag:  "with-residents",
		withUsage: "resolve the location's residents",
		withRun:   runLocationWithResidents,
	})
}

func locationDetails(location rmapi.Location) [][]string {
	return [][]string{
		{"ID", strconv.Itoa(location.ID)},
		{"Name", location.Name},
		{"Type", orNA(location.Type)},
		{"Dimension", orNA(location.Dimension)},
		{"Residents", summarizeReferences(location.Residents)},
		{"Created", orNA(location.Created)},
	}
}

func runLocationWithResidents(ctx context.Context, client rmapi.Client, w io.Writer, id int) error {
	result, err := client.Locations().GetWithReferences(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get location with residents: %w", err)
	}

	return render(w, result, func() error {
		err := renderProperties(w, locationDetails(result.Location))
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(w, "\nResidents (%d):\n", len(result.Residents))

		return renderTable(w, characterColumns, characterRows(result.Residents))
	})
}
