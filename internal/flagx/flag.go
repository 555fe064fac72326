// Package flagx lets several configuration layers pick their own flags out of
// os.Args without tripping over each other's definitions.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs returns the subset of args made of allowedFlags and their values.
//
// Both "-c conf.json" and "-c=conf.json" forms are recognised. A token that
// follows an allowed flag is treated as its value unless it starts with "-".
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// lookupString parses only the given aliases from os.Args and returns the
// last value supplied, or def when none was given.
func lookupString(def string, aliases ...string) string {
	value := def

	names := make([]string, 0, len(aliases))
	for _, a := range aliases {
		names = append(names, "-"+a)
	}

	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, a := range aliases {
		fs.StringVar(&value, a, def, "")
	}
	_ = fs.Parse(FilterArgs(os.Args[1:], names))

	return value
}

// ConfigFileFlag returns the JSON config path given via -c or -config,
// or an empty string when neither is present.
func ConfigFileFlag() string {
	return lookupString("", "config", "c")
}

// EnvFileFlag returns the dotenv path given via -env, defaulting to ".env".
func EnvFileFlag() string {
	return lookupString(".env", "env")
}
