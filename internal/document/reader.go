// Package document extracts plain text from the files a user hands to the tool.
package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ziadkadry99/tailor4job/internal/docx"
)

// ErrFileRead is returned when an input file is missing or cannot be read.
var ErrFileRead = errors.New("cannot read input file")

// IsStructured reports whether path is read paragraph by paragraph.
func IsStructured(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".docx")
}

// ReadText returns the text of a single file. Structured documents yield one
// line per paragraph; anything else is read as UTF-8 with malformed bytes dropped.
func ReadText(path string) (string, error) {
	if IsStructured(path) {
		paragraphs, err := docx.ReadParagraphs(path)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrFileRead, path, err)
		}
		var b strings.Builder
		for _, p := range paragraphs {
			b.WriteString(p)
			b.WriteByte('\n')
		}
		return b.String(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileRead, err)
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

// ReadAll concatenates the text of every file in the order given. Plain files
// are followed by a newline; structured documents already end with one after
// their last paragraph.
func ReadAll(paths []string) (string, error) {
	var b strings.Builder
	for _, p := range paths {
		text, err := ReadText(p)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
		if !IsStructured(p) {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// ExpandPaths resolves glob patterns (doublestar syntax, "**" included) and
// checks that every literal path exists. An argument naming an existing file
// is taken literally even if it contains glob metacharacters. Order is
// preserved; the matches of one pattern are sorted.
func ExpandPaths(patterns []string) ([]string, error) {
	var out []string
	for _, pattern := range patterns {
		info, err := os.Stat(pattern)
		switch {
		case err == nil:
			if info.IsDir() {
				return nil, fmt.Errorf("%w: path %q is a directory", ErrFileRead, pattern)
			}
			out = append(out, pattern)
			continue
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %w", ErrFileRead, err)
		case !hasMeta(pattern):
			return nil, fmt.Errorf("%w: path %q does not exist", ErrFileRead, pattern)
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("%w: bad pattern %q: %w", ErrFileRead, pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: no files match %q", ErrFileRead, pattern)
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
