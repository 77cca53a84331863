package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/maxvaer/dfuzz/internal/config"
	"github.com/maxvaer/dfuzz/internal/runner"
	"github.com/maxvaer/dfuzz/pkg/version"
)

type flagGroup struct {
	title string
	flags []string
}

var helpGroups = []flagGroup{
	{"TARGET", []string{"urls-file", "request-file", "wordlist", "cidr", "ports"}},
	{"DISCOVERY", []string{"recursive-depth", "include-status", "exclude-size", "auto-duplicate", "duplicate-per-target"}},
	{"PERFORMANCE", []string{"threads", "timeout"}},
	{"HTTP", []string{"header", "user-agent", "proxy"}},
	{"OUTPUT", []string{"output", "format", "sort", "tree", "quiet", "no-color"}},
	{"INTEGRATIONS", []string{"on-result", "metrics-addr", "config"}},
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd(&config.Options{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(opts *config.Options) *cobra.Command {
	var headers []string

	cmd := &cobra.Command{
		Use:     "dfuzz -f <urls-file> -w <wordlist> [flags]",
		Short:   "Concurrent web content discovery",
		Version: version.Version,
		Long: `dfuzz requests every wordlist entry against each base URL, reports
responses with accepted status codes and can recurse into discovered
directories. Repeated response lengths can be suppressed as soft-404s.`,
		Example: `  dfuzz -f urls.txt -w common.txt
  dfuzz -f urls.txt -w common.txt -i 200,403 -t 50
  dfuzz -f urls.txt -w dirs.txt -r 3 --auto-duplicate
  dfuzz -f urls.txt -w common.txt -o hits.json --format json --sort status
  dfuzz --request-file burp.req -w common.txt
  dfuzz --cidr 192.168.1.0/28 --ports 80,8080 -w common.txt
  dfuzz -f urls.txt -w common.txt --on-result "notify-send {url}"
  dfuzz --config dfuzz.yaml -f urls.txt`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd, opts.ConfigFile); err != nil {
				return err
			}
			parsed, err := parseHeaders(headers)
			if err != nil {
				return err
			}
			opts.Headers = parsed

			if opts.URLsFile == "" && opts.CIDRTargets == "" && opts.RequestFile == "" {
				_ = cmd.Help()
				fmt.Fprintln(cmd.ErrOrStderr())
			}
			return opts.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return runner.Run(ctx, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := cmd.Flags()

	// Target
	f.StringVarP(&opts.URLsFile, "urls-file", "f", "", "File with one base URL per line")
	f.StringVar(&opts.RequestFile, "request-file", "", "Raw HTTP request (e.g. Burp Suite export) to take a base URL and headers from")
	f.StringVarP(&opts.WordlistPath, "wordlist", "w", "", "Wordlist of path segments")
	f.StringVar(&opts.CIDRTargets, "cidr", "", "CIDR range to scan (e.g. 192.168.1.0/24)")
	f.StringVar(&opts.Ports, "ports", "", "Ports for CIDR targets (comma-separated, e.g. 80,8080)")

	// Discovery
	f.IntVarP(&opts.MaxDepth, "recursive-depth", "r", 0, "Maximum recursion depth (0 or 1 disables recursion)")
	opts.AcceptedCodes = append([]int(nil), config.DefaultAcceptedCodes...)
	f.VarP(&intSliceValue{target: &opts.AcceptedCodes}, "include-status", "i", "Status codes reported as hits (comma-separated)")
	f.Var(&intSliceValue{target: &opts.ExcludeSize}, "exclude-size", "Hide responses of these sizes (comma-separated)")
	f.BoolVar(&opts.AutoDuplicate, "auto-duplicate", false, "Suppress a response length after it was seen 3 times")
	f.BoolVar(&opts.DuplicatePerTarget, "duplicate-per-target", false, "Reset duplicate counters for every base URL")

	// Performance
	f.IntVarP(&opts.Threads, "threads", "t", config.DefaultThreads, "Concurrent workers (1-100)")
	f.DurationVar(&opts.Timeout, "timeout", config.DefaultTimeout, "HTTP request timeout")

	// HTTP
	f.StringSliceVarP(&headers, "header", "H", nil, "Custom headers (Key: Value)")
	f.StringVar(&opts.UserAgent, "user-agent", "", "Custom User-Agent string")
	f.StringVar(&opts.Proxy, "proxy", "", "HTTP proxy URL")

	// Output
	f.StringVarP(&opts.OutputFile, "output", "o", "", "Write hits to this file after the run")
	f.StringVar(&opts.OutputFormat, "format", "text", "Output format: text, json, csv, yaml")
	f.StringVar(&opts.SortBy, "sort", "", "Sort the output file: status, path, size, depth")
	f.BoolVar(&opts.Tree, "tree", false, "Print discovered directories as a tree after the run")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "Only print hits and warnings")
	f.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")

	// Integrations
	f.StringVar(&opts.OnResultCmd, "on-result", "", "Shell command run for each hit (receives JSON on stdin)")
	f.StringVar(&opts.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	f.StringVar(&opts.ConfigFile, "config", "", "YAML config file with flag defaults")

	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		w := cmd.ErrOrStderr()
		fmt.Fprint(w, helpBanner())
		fmt.Fprintf(w, "%s\n\nUsage:\n  %s\n", cmd.Long, cmd.UseLine())
		fmt.Fprintf(w, "\nExamples:\n%s\n", cmd.Example)
		fmt.Fprintf(w, "\nFlags:\n")
		for _, g := range helpGroups {
			fmt.Fprintf(w, "\n%s:\n", g.title)
			for _, name := range g.flags {
				if f := cmd.Flags().Lookup(name); f != nil {
					fmt.Fprintln(w, formatFlag(f))
				}
			}
		}
		fmt.Fprintln(w)
	})

	return cmd
}

func parseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		key, val, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid header format %q, expected 'Key: Value'", h)
		}
		headers[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}
	return headers, nil
}

// intSliceValue implements pflag.Value for comma-separated int lists. The
// first Set replaces the default; later ones append.
type intSliceValue struct {
	target  *[]int
	changed bool
}

func (v *intSliceValue) String() string {
	if v.target == nil || len(*v.target) == 0 {
		return ""
	}
	parts := make([]string, len(*v.target))
	for i, val := range *v.target {
		parts[i] = strconv.Itoa(val)
	}
	return strings.Join(parts, ",")
}

func (v *intSliceValue) Set(s string) error {
	codes, err := config.ParseStatusCodes(s)
	if err != nil {
		return err
	}
	if !v.changed {
		*v.target = nil
		v.changed = true
	}
	*v.target = append(*v.target, codes...)
	return nil
}

func (v *intSliceValue) Type() string { return "ints" }

func formatFlag(f *pflag.Flag) string {
	var left string
	if f.Shorthand != "" {
		left = fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	} else {
		left = fmt.Sprintf("    --%s", f.Name)
	}

	typ := f.Value.Type()
	if typ != "bool" {
		left += " " + typ
	}

	const col = 36
	for len(left) < col {
		left += " "
	}

	right := f.Usage
	def := f.DefValue
	if def != "" && def != "false" && def != "0" && def != "0s" && def != "[]" {
		right += fmt.Sprintf(" (default %s)", def)
	}

	return "   " + left + right
}

func helpBanner() string {
	return fmt.Sprintf(`
     ___  ___
    / _ \/ _/_ _________
   / // / _/ // /_ /_ /
  /____/_/ \_,_//__/__/   %s

`, version.Label())
}
