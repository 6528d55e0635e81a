package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/rmapi/pkg/rmapi"
)

// NewInfoCommand creates the info command.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display API endpoint information",
		Long:  "Fetch the API root document and list the collection endpoints it advertises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			root, err := client.Root(ctx)
			if err != nil {
				return fmt.Errorf("failed to get API info: %w", err)
			}

			endpoint := viper.GetString("api")
			if endpoint == "" {
				endpoint = rmapi.DefaultAPIEndpoint
			}

			w := cmd.OutOrStdout()

			return render(w, root, func() error {
				return renderProperties(w, [][]string{
					{"Endpoint", endpoint},
					{"Characters", orNA(root.Characters)},
					{"Episodes", orNA(root.Episodes)},
					{"Locations", orNA(root.Locations)},
				})
			})
		},
	}
}
