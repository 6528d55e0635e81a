package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/rmapi/internal/constants"
	"github.com/fivetwenty-io/rmapi/pkg/rmapi"
	"github.com/fivetwenty-io/rmapi/pkg/rmclient"
)

const (
	// JSON formatting.
	defaultJSONIndent = 2

	metricsPrefix = "rmapi_"
)

// Common static errors used throughout the commands package.
var (
	ErrInvalidID           = errors.New("invalid id")
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrUnknownConfigKey    = errors.New("unknown config key")
	ErrSingleIDRequired    = errors.New("reference resolution takes exactly one id")
)

// userAgent is set from the build version by NewRootCommand.
var userAgent = "rmapi-cli/dev"

// CreateClient builds a catalog client from the merged flag, environment and
// config-file settings.
func CreateClient(ctx context.Context) (rmapi.Client, error) {
	config := &rmapi.Config{
		APIEndpoint:  viper.GetString("api"),
		HTTPTimeout:  viper.GetDuration("timeout"),
		RetryMax:     viper.GetInt("retries"),
		RateLimit:    viper.GetFloat64("rate_limit"),
		Concurrency:  viper.GetInt("concurrency"),
		MaxPages:     viper.GetInt("max_pages"),
		UserAgent:    userAgent,
		RetryWaitMin: constants.DefaultRetryWaitMin,
		RetryWaitMax: constants.DefaultRetryWaitMax,
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = rmapi.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if viper.GetBool("metrics") {
		metrics, err := rmapi.NewMetrics(prometheus.DefaultRegisterer)
		if err != nil {
			return nil, err
		}

		config.Metrics = metrics
	}

	client, err := rmclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// outputFormat returns the requested output format. Without an explicit
// choice, terminals get tables and pipes get JSON.
func outputFormat() (string, error) {
	format := strings.ToLower(viper.GetString("output"))
	if format == "" {
		if term.IsTerminal(int(os.Stdout.Fd())) { //nolint:gosec // file descriptors fit in int
			return constants.FormatTable, nil
		}

		return constants.FormatJSON, nil
	}

	switch format {
	case constants.FormatJSON, constants.FormatYAML, constants.FormatTable:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s (use table, json or yaml)", ErrInvalidOutputFormat, format)
	}
}

// render writes data as JSON or YAML, or calls table for table output.
func render(w io.Writer, data interface{}, table func() error) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		return StandardJSONRenderer(w, data)
	case constants.FormatYAML:
		return StandardYAMLRenderer(w, data)
	default:
		return table()
	}
}

// StandardJSONRenderer writes data as indented JSON.
func StandardJSONRenderer[T any](w io.Writer, data T) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data as YAML.
func StandardYAMLRenderer[T any](w io.Writer, data T) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(defaultJSONIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

// renderTable writes a table with the given header and rows.
func renderTable(w io.Writer, header []string, rows [][]string) error {
	cells := make([]any, 0, len(header))
	for _, cell := range header {
		cells = append(cells, cell)
	}

	table := tablewriter.NewWriter(w)
	table.Header(cells...)

	for _, row := range rows {
		err := table.Append(row)
		if err != nil {
			return fmt.Errorf("failed to append table row: %w", err)
		}
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderProperties writes a two-column Property/Value table.
func renderProperties(w io.Writer, properties [][]string) error {
	return renderTable(w, []string{"Property", "Value"}, properties)
}

// parseID parses a positive entity id argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q (must be a positive integer)", ErrInvalidID, arg)
	}

	return id, nil
}

// parseIDs parses every argument with parseID.
func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))

	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}

// summarizeReferences renders reference URLs as a short id list.
func summarizeReferences(refs []string) string {
	if len(refs) == 0 {
		return constants.NotAvailable
	}

	shown := refs
	if len(shown) > constants.MaxListedReferences {
		shown = shown[:constants.MaxListedReferences]
	}

	ids := make([]string, 0, len(shown))

	for _, ref := range shown {
		id, err := rmapi.ParseReferenceID(ref)
		if err != nil {
			ids = append(ids, "?")

			continue
		}

		ids = append(ids, strconv.Itoa(id))
	}

	summary := strings.Join(ids, ", ")
	if extra := len(refs) - len(shown); extra > 0 {
		summary += fmt.Sprintf(" (+%d more)", extra)
	}

	return summary
}

// referenceName renders a Reference for tables.
func referenceName(ref rmapi.Reference) string {
	if ref.Name == "" {
		return constants.NotAvailable
	}

	return ref.Name
}

// orNA returns value, or N/A when it is empty.
func orNA(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

// titleCase capitalizes each word, for status and type columns.
func titleCase(value string) string {
	return cases.Title(language.English).String(value)
}

// stringFlags returns the values of the named flags that were set on the
// command line. Unset flags map to nil so they are not sent.
func stringFlags(cmd *cobra.Command, names ...string) map[string]*string {
	values := make(map[string]*string, len(names))

	for _, name := range names {
		values[name] = nil

		if cmd.Flags().Changed(name) {
			value, _ := cmd.Flags().GetString(name)
			values[name] = &value
		}
	}

	return values
}

// dumpMetrics writes the client's Prometheus metrics in text format.
func dumpMetrics(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), metricsPrefix) {
			continue
		}

		_, err = expfmt.MetricFamilyToText(w, family)
		if err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	return nil
}
