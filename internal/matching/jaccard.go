// Package matching holds the manual interest-overlap scoring used as a cheap
// secondary signal next to the semantic vector search.
package matching

import "strings"

const (
	// MaxInterests caps how many tags a classroom may carry.
	MaxInterests = 20
	// MaxInterestLength caps the length of a single tag.
	MaxInterestLength = 50
)

// InterestSimilarity returns the Jaccard overlap of two interest tag sets in
// [0,1]. Tags are trimmed and compared case-insensitively; an empty set on
// either side scores 0. Pure function, no error conditions.
func InterestSimilarity(a, b []string) float64 {
	setA := normalize(a)
	setB := normalize(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tag := range setA {
		if _, ok := setB[tag]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}

func normalize(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		set[tag] = struct{}{}
	}
	return set
}

// SanitizeInterests trims tags, drops empties and case-insensitive
// duplicates (keeping the first spelling), truncates overlong tags and caps
// the list at MaxInterests. Order of first appearance is preserved.
func SanitizeInterests(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if len(tag) > MaxInterestLength {
			tag = tag[:MaxInterestLength]
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
		if len(out) == MaxInterests {
			break
		}
	}
	return out
}
