// Package hook runs a user-supplied shell command for every hit.
package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/maxvaer/dfuzz/internal/scanner"
)

// Timeout bounds a single hook invocation.
const Timeout = 30 * time.Second

// Logger receives hook output and failures.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// payload is the JSON document written to the command's stdin.
type payload struct {
	URL         string `json:"url"`
	Base        string `json:"base"`
	Segment     string `json:"segment"`
	Depth       int    `json:"depth"`
	StatusCode  int    `json:"status"`
	Size        int64  `json:"size"`
	RedirectURL string `json:"redirect,omitempty"`
}

// Runner executes a shell command for each hit.
type Runner struct {
	cmd string
	log Logger
}

// NewRunner creates a hook runner for the shell command cmd.
func NewRunner(cmd string, log Logger) *Runner {
	return &Runner{cmd: cmd, log: log}
}

// Expand substitutes the {url}, {status}, {size}, {depth}, {base} and
// {segment} placeholders in the command.
func (r *Runner) Expand(result *scanner.ScanResult) string {
	return strings.NewReplacer(
		"{url}", result.URL,
		"{status}", strconv.Itoa(result.StatusCode),
		"{size}", strconv.FormatInt(result.ContentLength, 10),
		"{depth}", strconv.Itoa(result.Depth),
		"{base}", result.Base,
		"{segment}", result.Segment,
	).Replace(r.cmd)
}

// Run executes the hook with the result as JSON on stdin. Failures are
// logged and never stop the scan.
func (r *Runner) Run(ctx context.Context, result *scanner.ScanResult) {
	data, err := json.Marshal(payload{
		URL:         result.URL,
		Base:        result.Base,
		Segment:     result.Segment,
		Depth:       result.Depth,
		StatusCode:  result.StatusCode,
		Size:        result.ContentLength,
		RedirectURL: result.RedirectURL,
	})
	if err != nil {
		r.log.Warnf("hook: marshal %s: %v", result.URL, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	shell, args := shellCommand()
	cmd := exec.CommandContext(ctx, shell, append(args, r.Expand(result))...)
	cmd.Stdin = bytes.NewReader(data)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		r.log.Warnf("hook: %s: %v %s", result.URL, err, strings.TrimSpace(stderr.String()))
		return
	}
	if msg := strings.TrimSpace(string(out)); msg != "" {
		r.log.Infof("hook: %s", msg)
	}
}

func shellCommand() (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C"}
	}
	return "sh", []string{"-c"}
}
