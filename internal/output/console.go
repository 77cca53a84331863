package output

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/maxvaer/dfuzz/internal/scanner"
)

// Console is the single writer for everything the user sees while a scan
// runs: hit lines on out, status messages and the progress bar on errOut.
// All methods are safe for concurrent use.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	quiet  bool
	bar    *progressbar.ProgressBar

	green, yellow, magenta, red, cyan *color.Color
}

// NewConsole creates a Console. quiet hides status messages and the progress
// bar but never hit lines or warnings.
func NewConsole(out, errOut io.Writer, noColor, quiet bool) *Console {
	c := &Console{
		out:     out,
		errOut:  errOut,
		quiet:   quiet,
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow),
		magenta: color.New(color.FgMagenta),
		red:     color.New(color.FgRed),
		cyan:    color.New(color.FgCyan),
	}
	if noColor {
		for _, col := range []*color.Color{c.green, c.yellow, c.magenta, c.red, c.cyan} {
			col.DisableColor()
		}
	}
	return c
}

func (c *Console) statusColor(code int) *color.Color {
	switch code {
	case 200:
		return c.green
	case 301, 302:
		return c.yellow
	case 401, 403:
		return c.magenta
	default:
		return c.red
	}
}

// Hit prints one accepted result as "[status] url [length: n]".
func (c *Console) Hit(result *scanner.ScanResult) {
	line := fmt.Sprintf("[%s] %s [%s]",
		c.statusColor(result.StatusCode).Sprint(result.StatusCode),
		result.URL,
		c.yellow.Sprintf("length: %d", result.ContentLength),
	)
	if result.RedirectURL != "" {
		line += " -> " + result.RedirectURL
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearBar()
	fmt.Fprintln(c.out, line)
	c.redrawBar()
}

// Infof prints an informational "[*]" line unless quiet.
func (c *Console) Infof(format string, args ...any) {
	if c.quiet {
		return
	}
	c.logf(c.cyan.Sprint("[*]"), format, args...)
}

// Goodf prints a "[+]" line unless quiet.
func (c *Console) Goodf(format string, args ...any) {
	if c.quiet {
		return
	}
	c.logf(c.green.Sprint("[+]"), format, args...)
}

// Warnf prints a "[!]" line, even in quiet mode.
func (c *Console) Warnf(format string, args ...any) {
	c.logf(c.red.Sprint("[!]"), format, args...)
}

func (c *Console) logf(prefix, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearBar()
	fmt.Fprintf(c.errOut, "%s %s\n", prefix, fmt.Sprintf(format, args...))
	c.redrawBar()
}

// Summary prints the end-of-run footer unless quiet.
func (c *Console) Summary(stats Stats) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.errOut,
		"\nCompleted: %d requests | Hits: %d | Filtered: %d | Errors: %d | Duration: %s | %.1f req/s\n",
		stats.TotalRequests,
		stats.Hits,
		stats.FilteredCount,
		stats.ErrorCount,
		stats.Duration.Round(time.Millisecond),
		stats.RequestsPerSec,
	)
}
