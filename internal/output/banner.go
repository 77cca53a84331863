package output

import (
	"fmt"

	"github.com/maxvaer/dfuzz/pkg/version"
)

// BannerInfo summarises the run configuration shown at startup.
type BannerInfo struct {
	Targets       int
	Wordlist      string
	Words         int
	Threads       int
	MaxDepth      int
	AcceptedCodes []int
	AutoDuplicate bool
	OutputFile    string
}

// Banner prints the startup banner unless quiet.
func (c *Console) Banner(info BannerInfo) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.errOut, "\n%s %s\n",
		c.cyan.Sprint("   ___  ___                \n  / _ \\/ _/_ _________ \n / // / _/ // /_ /_ / \n/____/_/ \\_,_//__/__/"),
		version.Label())

	line := "  ──────────────────────────────────────"
	onOff := func(b bool) string {
		if b {
			return c.green.Sprint("ON")
		}
		return c.red.Sprint("OFF")
	}

	fmt.Fprintln(c.errOut, line)
	fmt.Fprintf(c.errOut, "  Targets:        %d\n", info.Targets)
	fmt.Fprintf(c.errOut, "  Wordlist:       %s (%d words)\n", info.Wordlist, info.Words)
	fmt.Fprintf(c.errOut, "  Threads:        %s\n", c.yellow.Sprint(info.Threads))
	fmt.Fprintf(c.errOut, "  Status codes:   %v\n", info.AcceptedCodes)
	if info.MaxDepth > 1 {
		fmt.Fprintf(c.errOut, "  Max depth:      %d\n", info.MaxDepth)
	}
	fmt.Fprintf(c.errOut, "  Auto-duplicate: %s\n", onOff(info.AutoDuplicate))
	if info.OutputFile != "" {
		fmt.Fprintf(c.errOut, "  Output:         %s\n", info.OutputFile)
	}
	fmt.Fprintln(c.errOut, line)
}
