package match

import (
	"sort"
	"strings"
)

// minSuggestScore is the similarity floor below which a candidate is not
// offered as a "did you mean" hint.
const minSuggestScore = 0.5

// normalizeDirective lowercases a directive name and strips separators so
// that "richCmpFull", "richcmp-full" and "richcmp_full" all compare equal.
func normalizeDirective(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		if r == '_' || r == '-' || r == ' ' {
			continue
		}
		sb.WriteRune(r)
	}

	return sb.String()
}

// Suggest returns up to n known directive names ranked by similarity to the
// unknown name. Candidates below the score floor are dropped.
func Suggest(unknown string, known []string, n int) []string {
	type scored struct {
		name  string
		score float64
	}

	norm := normalizeDirective(unknown)

	var candidates []scored
	for _, k := range known {
		score := LevenshteinNormalized(norm, normalizeDirective(k))
		if score < minSuggestScore {
			continue
		}

		candidates = append(candidates, scored{name: k, score: score})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}

		return candidates[i].name < candidates[j].name
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}

	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.name)
	}

	return out
}
