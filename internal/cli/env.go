package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by the CLI.
const EnvPrefix = "VSGEN_"

// LookupFunc reads one environment variable.
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a lookup over the process environment, falling back to the given
// .env files. Variables already set in the process win, as with godotenv.Load. Missing
// files are ignored.
func EnvLookup(files ...string) (LookupFunc, error) {
	fileEnv := make(map[string]string)
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for k, v := range vals {
			if _, seen := fileEnv[k]; !seen {
				fileEnv[k] = v
			}
		}
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}, nil
}

func envString(lookup LookupFunc, name, def string) string {
	if v, ok := lookup(EnvPrefix + name); ok && v != "" {
		return v
	}
	return def
}
