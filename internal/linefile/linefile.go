// Package linefile rewrites line-oriented configuration files with a
// filter-and-append transform: read the whole file, drop or keep lines,
// append replacements, write the result back.
package linefile

import (
	"fmt"
	"os"
	"strings"
)

// Split turns file contents into lines. A trailing newline does not
// produce a phantom empty line.
func Split(contents string) []string {
	if contents == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(contents, "\n"), "\n")
}

// Join renders lines back to file contents, one newline after each.
func Join(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Rewrite reads path, runs the transform over its lines, and writes
// the result back in place.
func Rewrite(path string, transform func(lines []string) []string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	out := Join(transform(Split(string(contents))))
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
