package commands

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/rmapi/pkg/rmapi"
)

func TestSummarizeReferences(t *testing.T) {
	t.Parallel()

	many := make([]string, 0, 12)
	for id := 1; id <= 12; id++ {
		many = append(many, fmt.Sprintf("%s/character/%d", apiBase, id))
	}

	tests := []struct {
		name string
		refs []string
		want string
	}{
		{name: "empty", refs: nil, want: "N/A"},
		{name: "ids", refs: []string{apiBase + "/episode/1", apiBase + "/episode/28"}, want: "1, 28"},
		{name: "malformed", refs: []string{apiBase + "/episode/x"}, want: "?"},
		{name: "truncated", refs: many, want: "1, 2, 3, 4, 5, 6, 7, 8, 9, 10 (+2 more)"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, summarizeReferences(tt.refs))
		})
	}
}

func TestParseIDs(t *testing.T) {
	t.Parallel()

	ids, err := parseIDs([]string{"1", "183"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 183}, ids)

	for _, bad := range []string{"0", "-4", "rick", ""} {
		_, err = parseIDs([]string{"1", bad})
		require.ErrorIs(t, err, ErrInvalidID, bad)
	}
}

func TestFormatting(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Unknown", titleCase(string(rmapi.StatusUnknown)))
	assert.Equal(t, "Alive", titleCase(string(rmapi.StatusAlive)))
	assert.Equal(t, "N/A", orNA(""))
	assert.Equal(t, "Human", orNA("Human"))
	assert.Equal(t, "N/A", referenceName(rmapi.Reference{}))
	assert.Equal(t, "unknown", referenceName(rmapi.Reference{Name: "unknown"}))
}

func TestStringFlags(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "filter"}
	cmd.Flags().String("name", "", "")
	cmd.Flags().String("type", "", "")
	cmd.Flags().String("gender", "", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--name", "rick", "--type", ""}))

	values := stringFlags(cmd, "name", "type", "gender")
	require.NotNil(t, values["name"])
	assert.Equal(t, "rick", *values["name"])
	require.NotNil(t, values["type"], "an explicit empty value is kept")
	assert.Empty(t, *values["type"])
	assert.Nil(t, values["gender"])
}

func TestDumpMetrics(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "unrelated_total"}))

	metrics, err := rmapi.NewMetrics(registry)
	require.NoError(t, err)
	metrics.Requests().WithLabelValues("episode", "200").Inc()

	var buf bytes.Buffer
	require.NoError(t, dumpMetrics(&buf, registry))
	assert.Contains(t, buf.String(), `rmapi_client_requests_total{code="200",kind="episode"} 1`)
	assert.NotContains(t, buf.String(), "unrelated_total")
}
