package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits. Retries are opt-in; these apply once RetryMax is set.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Concurrency limits.
const (
	// DefaultResolveConcurrency limits concurrent reference fetches.
	DefaultResolveConcurrency = 10
)

// APIPathRoot is the API root document. Collection paths come from
// rmapi.Kind.Path.
const APIPathRoot = "/"

// Display constants.
const (
	// NotAvailable is shown for missing values.
	NotAvailable = "N/A"

	// FormatJSON selects JSON output.
	FormatJSON = "json"

	// FormatYAML selects YAML output.
	FormatYAML = "yaml"

	// FormatTable selects table output.
	FormatTable = "table"

	// MaxListedReferences caps reference lists shown in detail tables.
	MaxListedReferences = 10
)
