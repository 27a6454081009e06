package ecosystem

import (
	"fmt"
	"os"
	"strings"
)

// Detect returns the ecosystems whose marker files exist directly under
// root, in resolution order. A directory with no markers yields an empty
// slice and a nil error; callers treat that as "nothing to run". The only
// error case is root itself being unreadable.
//
// The scan is a single non-recursive directory listing: markers in
// subdirectories do not count.
func Detect(root string) ([]Ecosystem, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	names := make(map[string]bool, len(entries))
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names[e.Name()] = true
		files = append(files, e.Name())
	}

	var detected []Ecosystem
	for _, ent := range table {
		if matches(ent.Markers, names, files) {
			detected = append(detected, ent.Eco)
		}
	}
	return detected, nil
}

func matches(markers []marker, names map[string]bool, files []string) bool {
	for _, m := range markers {
		if m.Name != "" && names[m.Name] {
			return true
		}
		if m.Suffix != "" {
			for _, f := range files {
				if strings.HasSuffix(f, m.Suffix) {
					return true
				}
			}
		}
	}
	return false
}
