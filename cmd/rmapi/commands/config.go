package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/rmapi/internal/constants"
)

// configKeys maps each persistable setting to its value parser.
var configKeys = map[string]func(string) (interface{}, error){
	"api":         parseStringValue,
	"output":      parseOutputValue,
	"timeout":     parseDurationValue,
	"retries":     parseIntValue,
	"rate_limit":  parseFloatValue,
	"concurrency": parseIntValue,
	"max_pages":   parseIntValue,
	"verbose":     parseBoolValue,
	"metrics":     parseBoolValue,
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in $HOME/.rmapi/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective settings after merging flags, environment and config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := make(map[string]interface{}, len(configKeys))
			for _, key := range sortedConfigKeys() {
				settings[key] = viper.Get(key)
			}

			w := cmd.OutOrStdout()

			return render(w, settings, func() error {
				rows := make([][]string, 0, len(settings))
				for _, key := range sortedConfigKeys() {
					rows = append(rows, []string{key, formatConfigValue(settings[key])})
				}

				return renderTable(w, []string{"Key", "Value"}, rows)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Persist a setting to the config file. Keys use underscores, e.g. rate_limit.",
		Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			key, raw := args[0], args[1]

			parse, ok := configKeys[key]
			if !ok {
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
			}

			value, err := parse(raw)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}

			return updateConfigFile(func(values map[string]interface{}) {
				values[key] = value
			})
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a setting from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if _, ok := configKeys[key]; !ok {
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
			}

			return updateConfigFile(func(values map[string]interface{}) {
				delete(values, key)
			})
		},
	}
}

// updateConfigFile reads the config file, applies change and writes it back.
func updateConfigFile(change func(map[string]interface{})) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	values := make(map[string]interface{})

	// path comes from the --config flag or the user's home directory
	data, err := os.ReadFile(path) // #nosec G304
	switch {
	case err == nil:
		err = yaml.Unmarshal(data, &values)
		if err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("failed to read config file: %w", err)
	}

	change(values)

	data, err = yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	err = os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func sortedConfigKeys() []string {
	keys := make([]string, 0, len(configKeys))
	for key := range configKeys {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func formatConfigValue(value interface{}) string {
	if value == nil {
		return constants.NotAvailable
	}

	formatted := fmt.Sprint(value)
	if formatted == "" {
		return constants.NotAvailable
	}

	return formatted
}

func parseStringValue(value string) (interface{}, error) {
	return value, nil
}

func parseOutputValue(value string) (interface{}, error) {
	switch value {
	case constants.FormatJSON, constants.FormatYAML, constants.FormatTable:
		return value, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidOutputFormat, value)
	}
}

func parseDurationValue(value string) (interface{}, error) {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return nil, err
	}

	return duration.String(), nil
}

func parseIntValue(value string) (interface{}, error) {
	return strconv.Atoi(value)
}

func parseFloatValue(value string) (interface{}, error) {
	return strconv.ParseFloat(value, 64)
}

func parseBoolValue(value string) (interface{}, error) {
	return strconv.ParseBool(value)
}
