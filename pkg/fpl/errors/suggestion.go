package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestDistance bounds the edit distance for a "did you mean" hint.
const maxSuggestDistance = 3

// SuggestIdentifier suggests a known identifier for an unknown one.
// Abbreviations that are a subsequence of a known name ("eng" for
// "ac_eng_type") win over edit-distance matches ("rlf" for "rfl").
func SuggestIdentifier(unknown string, known []string) string {
	if len(known) == 0 {
		return ""
	}

	if ranks := fuzzy.RankFindFold(unknown, known); len(ranks) > 0 {
		sort.Sort(ranks)
		return fmt.Sprintf("did you mean '%s'?", ranks[0].Target)
	}

	best, bestDist := "", maxSuggestDistance+1
	for _, name := range known {
		if d := fuzzy.LevenshteinDistance(unknown, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	if best != "" {
		return fmt.Sprintf("did you mean '%s'?", best)
	}

	if len(known) > 5 {
		return fmt.Sprintf("known identifiers include: %s, ...", strings.Join(known[:5], ", "))
	}
	return fmt.Sprintf("known identifiers: %s", strings.Join(known, ", "))
}
