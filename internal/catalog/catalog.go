// Package catalog derives the list of known exercises from the reference
// document directory, one markdown file per exercise.
package catalog

import (
	"os"
	"sort"
	"strings"
	"unicode"
)

// List returns the sorted display names of the documented exercises. A
// missing or empty directory yields an empty list, never an error.
func List(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		name := DisplayName(strings.TrimSuffix(entry.Name(), ".md"))
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// DisplayName turns a file base name into a presentable exercise name:
// dashes and underscores become spaces and each word is title-cased, so
// "push-up" becomes "Push Up" and "plank" becomes "Plank".
func DisplayName(base string) string {
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	words := strings.Fields(base)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
