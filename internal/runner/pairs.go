package runner

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrArgumentMismatch is returned when the model and provider lists differ in length.
	ErrArgumentMismatch = errors.New("the number of models must match the number of providers")
	// ErrDuplicateOutput is returned when two pairs would write the same file.
	ErrDuplicateOutput = errors.New("model/provider pairs would overwrite each other's output")
)

// Pair is one model to run on one provider.
type Pair struct {
	Model    string
	Provider string
}

func (p Pair) String() string {
	return p.Model + " (" + p.Provider + ")"
}

// ParsePairs zips comma-separated model and provider lists position by position.
func ParsePairs(models, providers string) ([]Pair, error) {
	if strings.TrimSpace(models) == "" {
		return nil, errors.New("no model specified: use --model or set model in the config file")
	}
	if strings.TrimSpace(providers) == "" {
		return nil, errors.New("no provider specified: use --provider or set provider in the config file")
	}

	ms := splitList(models)
	ps := splitList(providers)
	if len(ms) != len(ps) {
		return nil, fmt.Errorf("%w (%d models, %d providers)", ErrArgumentMismatch, len(ms), len(ps))
	}

	pairs := make([]Pair, len(ms))
	for i := range ms {
		if ms[i] == "" || ps[i] == "" {
			return nil, fmt.Errorf("empty entry at position %d in model or provider list", i+1)
		}
		pairs[i] = Pair{Model: ms[i], Provider: ps[i]}
	}
	return pairs, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

var modelSanitizer = strings.NewReplacer("/", "_", ":", "_")

// SanitizeModel makes a model name safe for use in a file name.
func SanitizeModel(model string) string {
	return modelSanitizer.Replace(model)
}

// OutputPath returns where a pair's result is written. With a single pair
// the base path is used as is; with several, the sanitized model name
// prefixes the base file name so results do not overwrite each other.
func OutputPath(base, model string, multi bool) string {
	if !multi {
		return base
	}
	dir, file := filepath.Split(base)
	return filepath.Join(dir, SanitizeModel(model)+"_"+file)
}

// checkOutputPaths rejects pair lists whose results would land in the same file.
func checkOutputPaths(base string, pairs []Pair) error {
	multi := len(pairs) > 1
	seen := make(map[string]Pair, len(pairs))
	for _, pair := range pairs {
		path := OutputPath(base, pair.Model, multi)
		if prev, ok := seen[path]; ok {
			return fmt.Errorf("%w: %s and %s both write %s", ErrDuplicateOutput, prev, pair, path)
		}
		seen[path] = pair
	}
	return nil
}
