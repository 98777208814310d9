// Package flagx helps several packages parse their own subset of
// command-line flags without tripping over each other's definitions.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs keeps only the flags named in allowed (plus their values),
// so a flag.FlagSet can parse them without choking on unrelated flags.
// Both "-f value" and "-f=value" forms are supported.
func FilterArgs(args []string, allowed []string) []string {
	set := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		set[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := set[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := set[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}
	return filtered
}

// ConfigFileFlag extracts the config file path given via -c or -config.
// Returns "" when neither flag is present.
func ConfigFileFlag() string {
	var path string

	fs := flag.NewFlagSet("configfile", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "c", "", "path to config file (shorthand)")
	fs.StringVar(&path, "config", "", "path to config file")

	_ = fs.Parse(FilterArgs(os.Args[1:], []string{"-c", "-config", "--config"}))
	return path
}
