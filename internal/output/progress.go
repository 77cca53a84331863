package output

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

func newBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("path"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}

// StartProgress shows a bar of total steps on the status stream, replacing
// any previous one. No-op in quiet mode.
func (c *Console) StartProgress(total int, description string) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bar != nil {
		_ = c.bar.Finish()
	}
	c.bar = newBar(c.errOut, total, description)
}

// Tick advances the progress bar by one completed task.
func (c *Console) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bar != nil {
		_ = c.bar.Add(1)
	}
}

// FinishProgress completes and removes the current bar.
func (c *Console) FinishProgress() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bar != nil {
		_ = c.bar.Finish()
		c.bar = nil
	}
}

// clearBar and redrawBar must be called with c.mu held.
func (c *Console) clearBar() {
	if c.bar != nil {
		_ = c.bar.Clear()
	}
}

func (c *Console) redrawBar() {
	if c.bar != nil {
		_ = c.bar.RenderBlank()
	}
}
