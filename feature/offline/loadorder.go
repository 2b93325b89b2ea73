package offline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"content-catalog/core/esp"
)

// ParseLoadOrder reads a plugins.txt file. Lines starting with '*' are
// active plugins. Files that mark no line at all use the older format in
// which every listed plugin is active. Comments, blank lines, non-plugin
// names and duplicates are dropped.
func ParseLoadOrder(r io.Reader) ([]string, error) {
	type line struct {
		name   string
		active bool
	}
	var lines []line
	starred := false

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		text := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		active := strings.HasPrefix(text, "*")
		if active {
			starred = true
			text = strings.TrimSpace(text[1:])
		}
		if !esp.IsPluginName(text) {
			continue
		}
		lines = append(lines, line{name: text, active: active})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read load order: %w", err)
	}

	seen := make(map[string]bool, len(lines))
	var names []string
	for _, l := range lines {
		if starred && !l.active {
			continue
		}
		key := strings.ToLower(l.name)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, l.name)
	}
	return names, nil
}

// ReadLoadOrder parses the plugins.txt file at path.
func ReadLoadOrder(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open load order: %w", err)
	}
	defer f.Close()
	return ParseLoadOrder(f)
}

// DefaultLoadOrder orders names the way a fresh install would: .esm files,
// then .esl files, then .esp files, each group alphabetically.
func DefaultLoadOrder(names []string) []string {
	rank := func(name string) int {
		lower := strings.ToLower(name)
		switch {
		case strings.HasSuffix(lower, ".esm"):
			return 0
		case strings.HasSuffix(lower, ".esl"):
			return 1
		default:
			return 2
		}
	}

	out := make([]string, 0, len(names))
	for _, n := range names {
		if esp.IsPluginName(n) {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
