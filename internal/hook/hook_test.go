package hook

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxvaer/dfuzz/internal/scanner"
)

type recordLogger struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (l *recordLogger) Infof(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordLogger) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func hit() *scanner.ScanResult {
	return &scanner.ScanResult{
		Base:          "http://x.test/admin/",
		Segment:       "login",
		URL:           "http://x.test/admin/login",
		Depth:         2,
		StatusCode:    200,
		ContentLength: 30,
	}
}

func TestExpandPlaceholders(t *testing.T) {
	r := NewRunner("notify {status} {url} {size} {depth} {base} {segment}", &recordLogger{})
	assert.Equal(t,
		"notify 200 http://x.test/admin/login 30 2 http://x.test/admin/ login",
		r.Expand(hit()))
}

func TestRunPassesPayloadOnStdin(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	out := filepath.Join(t.TempDir(), "hook.json")
	log := &recordLogger{}
	NewRunner("cat > "+out, log).Run(context.Background(), hit())

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "http://x.test/admin/login", got["url"])
	assert.Equal(t, float64(200), got["status"])
	assert.Equal(t, float64(2), got["depth"])
	assert.Empty(t, log.warns)
}

func TestRunLogsOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	log := &recordLogger{}
	NewRunner("echo seen {status}", log).Run(context.Background(), hit())
	assert.Equal(t, []string{"hook: seen 200"}, log.infos)
}

func TestRunFailureIsLogged(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	log := &recordLogger{}
	NewRunner("echo broken >&2; exit 3", log).Run(context.Background(), hit())
	require.Len(t, log.warns, 1)
	assert.True(t, strings.Contains(log.warns[0], "broken"), log.warns[0])
}
