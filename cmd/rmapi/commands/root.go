package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configDirName  = ".rmapi"
	configFileName = "config.yml"
	envPrefix      = "RMAPI"
)

// NewRootCommand creates the rmapi command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	userAgent = "rmapi-cli/" + version

	rootCmd := &cobra.Command{
		Use:   "rmapi",
		Short: "Rick and Morty catalog CLI",
		Long: `A command-line interface for browsing the Rick and Morty catalog.

Characters, episodes and locations can be listed page by page or in full,
filtered by field, and fetched by id with their references resolved.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !viper.GetBool("metrics") {
				return nil
			}

			return dumpMetrics(cmd.ErrOrStderr(), prometheus.DefaultGatherer)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.rmapi/config.yml)")
	flags.StringP("api", "a", "", "API endpoint URL (default https://rickandmortyapi.com/api)")
	flags.StringP("output", "o", "", "output format (table, json, yaml); defaults to table on a terminal, json otherwise")
	flags.BoolP("verbose", "v", false, "log HTTP requests to stderr")
	flags.Duration("timeout", 0, "per-request HTTP timeout")
	flags.Int("retries", 0, "retries for transient failures")
	flags.Float64("rate-limit", 0, "maximum requests per second (0 disables)")
	flags.Int("concurrency", 0, "concurrent fetches while resolving references")
	flags.Int("max-pages", 0, "pagination safety cap")
	flags.Bool("metrics", false, "print request metrics to stderr after the command")

	// Bind flags to viper
	for key, flag := range map[string]string{
		"config":      "config",
		"api":         "api",
		"output":      "output",
		"verbose":     "verbose",
		"timeout":     "timeout",
		"retries":     "retries",
		"rate_limit":  "rate-limit",
		"concurrency": "concurrency",
		"max_pages":   "max-pages",
		"metrics":     "metrics",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	// Add commands
	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewInfoCommand())
	rootCmd.AddCommand(NewCharactersCommand())
	rootCmd.AddCommand(NewEpisodesCommand())
	rootCmd.AddCommand(NewLocationsCommand())

	return rootCmd
}

// initConfig loads the config file and RMAPI_* environment variables.
// A missing config file is not an error.
func initConfig(cmd *cobra.Command) error {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		configDir, err := defaultConfigDir()
		if err != nil {
			return err
		}

		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("failed to read config file: %w", err)
	}

	if viper.GetBool("verbose") {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", viper.ConfigFileUsed())
	}

	return nil
}

func defaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, configDirName), nil
}

// configFilePath returns the file config set writes to.
func configFilePath() (string, error) {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		return cfgFile, nil
	}

	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}

	configDir, err := defaultConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, configFileName), nil
}
