package service

import "strings"

// NormalizeHashtags splits a raw comma-separated tag string into trimmed,
// non-empty tag names. An empty or absent field yields no tags rather than
// an error. Duplicates are collapsed, first occurrence wins, so "a, a, b"
// resolves to exactly two tags.
func NormalizeHashtags(raw string) []string {
	tags := []string{}
	seen := map[string]bool{}

	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	return tags
}
