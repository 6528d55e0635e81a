package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/rmapi/pkg/rmapi"
)

// entityCommandConfig describes how one entity kind is listed and shown.
type entityCommandConfig[T rmapi.Entity, F rmapi.Filter] struct {
	use     string
	aliases []string
	plural  string

	client func(rmapi.Client) rmapi.EntityClient[T, F]

	// columns and row render list tables.
	columns []string
	row     func(T) []string

	// details renders the property table of a single entity.
	details func(T) [][]string

	// filterFlags are the string flags accepted by the filter command.
	filterFlags []filterFlag
	filter      func(values map[string]*string) F
}

type filterFlag struct {
	name  string
	usage string
}

func newEntityCommand[T rmapi.Entity, F rmapi.Filter](cfg entityCommandConfig[T, F], opts getOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     cfg.use,
		Aliases: cfg.aliases,
		Short:   fmt.Sprintf("Browse %s", cfg.plural),
		Long:    fmt.Sprintf("List, filter and inspect %s in the catalog", cfg.plural),
	}

	cmd.AddCommand(newListCommand(cfg))
	cmd.AddCommand(newGetCommand(cfg, opts))
	cmd.AddCommand(newFilterCommand(cfg))

	return cmd
}

func newListCommand[T rmapi.Entity, F rmapi.Filter](cfg entityCommandConfig[T, F]) *cobra.Command {
	var (
		allPages bool
		page     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", cfg.plural),
		Long:  fmt.Sprintf("List %s one page at a time, or every page with --all", cfg.plural),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			entities := cfg.client(client)

			if allPages {
				all, err := entities.ListAll(ctx)
				if err != nil {
					return fmt.Errorf("failed to list %s: %w", cfg.plural, err)
				}

				return renderList(cmd.OutOrStdout(), cfg, all, nil)
			}

			result, err := entities.List(ctx, rmapi.NewQueryParams().WithPage(page))
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", cfg.plural, err)
			}

			return renderList(cmd.OutOrStdout(), cfg, result.Results, &result.Info)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&page, "page", 1, "page number to fetch")

	return cmd
}

func newFilterCommand[T rmapi.Entity, F rmapi.Filter](cfg entityCommandConfig[T, F]) *cobra.Command {
	names := make([]string, 0, len(cfg.filterFlags))

	cmd := &cobra.Command{
		Use:   "filter",
		Short: fmt.Sprintf("Filter %s", cfg.plural),
		Long: fmt.Sprintf("Return the first page of %s matching the given fields. "+
			"Only flags given on the command line are sent.", cfg.plural),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			matches, err := cfg.client(client).Filter(ctx, cfg.filter(stringFlags(cmd, names...)))
			if err != nil {
				return fmt.Errorf("failed to filter %s: %w", cfg.plural, err)
			}

			return renderList(cmd.OutOrStdout(), cfg, matches, nil)
		},
	}

	for _, flag := range cfg.filterFlags {
		names = append(names, flag.name)
		cmd.Flags().String(flag.name, "", flag.usage)
	}

	return cmd
}

// getOptions wires a kind-specific detail view into the get command.
type getOptions struct {
	withFlag  string
	withUsage string
	withRun   func(ctx context.Context, client rmapi.Client, w io.Writer, id int) error
}

func newGetCommand[T rmapi.Entity, F rmapi.Filter](cfg entityCommandConfig[T, F], opts getOptions) *cobra.Command {
	var withReferences bool

	cmd := &cobra.Command{
		Use:   "get ID [ID...]",
		Short: fmt.Sprintf("Get %s by id", cfg.plural),
		Long: fmt.Sprintf("Display one %s, or several with a single request when more than one id is given. "+
			"Use --%s with a single id to resolve references.", cfg.use, opts.withFlag),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			if withReferences && len(ids) > 1 {
				return fmt.Errorf("%w: --%s given with %d ids", ErrSingleIDRequired, opts.withFlag, len(ids))
			}

			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			if len(ids) > 1 {
				entities, err := cfg.client(client).GetMany(ctx, ids)
				if err != nil {
					return fmt.Errorf("failed to get %s: %w", cfg.plural, err)
				}

				return renderList(w, cfg, entities, nil)
			}

			if withReferences {
				return opts.withRun(ctx, client, w, ids[0])
			}

			entity, err := cfg.client(client).Get(ctx, ids[0])
			if err != nil {
				return fmt.Errorf("failed to get %s: %w", cfg.use, err)
			}

			return render(w, entity, func() error {
				return renderProperties(w, cfg.details(*entity))
			})
		},
	}

	cmd.Flags().BoolVar(&withReferences, opts.withFlag, false, opts.withUsage)

	return cmd
}

func renderList[T rmapi.Entity, F rmapi.Filter](w io.Writer, cfg entityCommandConfig[T, F], entities []T, info *rmapi.Info) error {
	var data interface{} = entities
	if info != nil {
		data = rmapi.Page[T]{Info: *info, Results: entities}
	}

	return render(w, data, func() error {
		if len(entities) == 0 {
			_, err := fmt.Fprintf(w, "No %s found\n", cfg.plural)

			return err
		}

		rows := make([][]string, 0, len(entities))
		for _, entity := range entities {
			rows = append(rows, cfg.row(entity))
		}

		err := renderTable(w, cfg.columns, rows)
		if err != nil {
			return err
		}

		if info != nil && info.HasNext() {
			_, err = fmt.Fprintf(w, "\nShowing %d of %d %s (%d pages). Use --page or --all for more.\n",
				len(entities), info.Count, cfg.plural, info.Pages)
		}

		return err
	})
}
