package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. DFUZZ_THREADS.
const EnvPrefix = "DFUZZ"

// applyConfig fills every flag not given on the command line from the
// config file (when set) or a DFUZZ_* environment variable. Keys match
// flag names.
func applyConfig(cmd *cobra.Command, file string) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	var errs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		switch f.Name {
		case "config", "help", "version":
			return
		}
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		for _, s := range configValues(v.Get(f.Name)) {
			if err := cmd.Flags().Set(f.Name, s); err != nil {
				errs = append(errs, fmt.Errorf("config key %s: %w", f.Name, err))
			}
		}
	})
	return errors.Join(errs...)
}

// configValues flattens a config value into flag.Set arguments.
func configValues(val any) []string {
	switch vv := val.(type) {
	case []any:
		out := make([]string, len(vv))
		for i, item := range vv {
			out[i] = fmt.Sprint(item)
		}
		return out
	case []string:
		return vv
	default:
		return []string{fmt.Sprint(vv)}
	}
}
