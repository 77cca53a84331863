package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxvaer/dfuzz/internal/config"
)

// parse runs the command's flag handling and PreRunE without scanning.
func parse(t *testing.T, args ...string) (*config.Options, error) {
	t.Helper()
	opts := &config.Options{}
	cmd := newRootCmd(opts)
	cmd.RunE = func(*cobra.Command, []string) error { return nil }
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return opts, cmd.Execute()
}

func TestDefaults(t *testing.T) {
	opts, err := parse(t, "-f", "urls.txt", "-w", "words.txt")
	require.NoError(t, err)
	assert.Equal(t, "urls.txt", opts.URLsFile)
	assert.Equal(t, "words.txt", opts.WordlistPath)
	assert.Equal(t, []int{200, 301, 302}, opts.AcceptedCodes)
	assert.Equal(t, 10, opts.Threads)
	assert.Equal(t, 5*time.Second, opts.Timeout)
	assert.Equal(t, 0, opts.MaxDepth)
	assert.False(t, opts.AutoDuplicate)
	assert.Equal(t, "text", opts.OutputFormat)
}

func TestIncludeStatusReplacesDefault(t *testing.T) {
	opts, err := parse(t, "-f", "u", "-w", "w", "-i", "200,403", "-r", "3", "-t", "50", "--auto-duplicate", "-o", "out.txt")
	require.NoError(t, err)
	assert.Equal(t, []int{200, 403}, opts.AcceptedCodes)
	assert.Equal(t, 3, opts.MaxDepth)
	assert.Equal(t, 50, opts.Threads)
	assert.True(t, opts.AutoDuplicate)
	assert.Equal(t, "out.txt", opts.OutputFile)
}

func TestInputErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"malformed status list", []string{"-f", "u", "-w", "w", "-i", "200,abc"}},
		{"empty status list", []string{"-f", "u", "-w", "w", "-i", ","}},
		{"blank status entry", []string{"-f", "u", "-w", "w", "-i", "200,,301"}},
		{"trailing comma", []string{"-f", "u", "-w", "w", "-i", "200,"}},
		{"blank exclude size", []string{"-f", "u", "-w", "w", "--exclude-size", "10,,20"}},
		{"no target", []string{"-w", "w"}},
		{"no wordlist", []string{"-f", "u"}},
		{"bad format", []string{"-f", "u", "-w", "w", "--format", "xml"}},
		{"bad sort", []string{"-f", "u", "-w", "w", "--sort", "time"}},
		{"bad header", []string{"-f", "u", "-w", "w", "-H", "no-colon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestHeaders(t *testing.T) {
	opts, err := parse(t, "-f", "u", "-w", "w", "-H", "X-Token: abc", "-H", "Cookie: a=b")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"X-Token": "abc", "Cookie": "a=b"}, opts.Headers)
}

func TestConfigFileFillsUnsetFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dfuzz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
wordlist: from-config.txt
threads: 20
include-status: [200, 401]
auto-duplicate: true
timeout: 2s
`), 0o644))

	opts, err := parse(t, "--config", path, "-f", "u", "-t", "5")
	require.NoError(t, err)
	assert.Equal(t, "from-config.txt", opts.WordlistPath)
	assert.Equal(t, 5, opts.Threads, "command line wins")
	assert.Equal(t, []int{200, 401}, opts.AcceptedCodes)
	assert.True(t, opts.AutoDuplicate)
	assert.Equal(t, 2*time.Second, opts.Timeout)
}

func TestConfigFileMissing(t *testing.T) {
	_, err := parse(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "-f", "u", "-w", "w")
	assert.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("DFUZZ_RECURSIVE_DEPTH", "4")
	t.Setenv("DFUZZ_INCLUDE_STATUS", "204")

	opts, err := parse(t, "-f", "u", "-w", "w")
	require.NoError(t, err)
	assert.Equal(t, 4, opts.MaxDepth)
	assert.Equal(t, []int{204}, opts.AcceptedCodes)
}

func TestConfigValues(t *testing.T) {
	assert.Equal(t, []string{"200", "401"}, configValues([]any{200, 401}))
	assert.Equal(t, []string{"a"}, configValues([]string{"a"}))
	assert.Equal(t, []string{"true"}, configValues(true))
}
