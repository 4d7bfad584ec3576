package merge

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/ruminaider/upsync/internal/markdown"
)

// DefaultThreshold is the minimum 0-100 score a candidate must reach to
// count as the same logical section.
const DefaultThreshold = 80.0

const (
	headerWeight  = 0.7
	contentWeight = 0.3
)

// Similarity returns a 0-100 score from case-sensitive Levenshtein edit
// distance. Identical strings score 100, as do two empty strings; an empty
// string against a non-empty one scores 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 100
	}
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(dist)/float64(maxLen))
}

// SectionScore weighs header similarity over body similarity.
func SectionScore(a, b markdown.Section) float64 {
	return headerWeight*Similarity(a.Header, b.Header) +
		contentWeight*Similarity(a.Content(), b.Content())
}

// Match identifies the winning candidate of one BestMatch call.
type Match struct {
	Index int
	Score float64
}

// BestMatch finds the candidate corresponding to target. An exact header
// match wins outright, so a rewritten body never un-pairs a section from
// itself; otherwise all unclaimed candidates are scored and the maximum
// must clear threshold. The winner is claimed in the visited set. Claiming
// is greedy and order-dependent: the first caller to claim a candidate
// wins, and later targets cannot reuse it. The claimed set is scoped to
// one merge invocation.
func BestMatch(target markdown.Section, candidates []markdown.Section, claimed map[int]bool, threshold float64) (Match, bool) {
	for i, cand := range candidates {
		if claimed[i] || cand.Header != target.Header || cand.Level != target.Level {
			continue
		}
		claimed[i] = true
		return Match{Index: i, Score: SectionScore(target, cand)}, true
	}

	best := Match{Index: -1}
	for i, cand := range candidates {
		if claimed[i] {
			continue
		}
		score := SectionScore(target, cand)
		if best.Index == -1 || score > best.Score {
			best = Match{Index: i, Score: score}
		}
	}
	if best.Index == -1 || best.Score < threshold {
		return Match{Index: -1}, false
	}
	claimed[best.Index] = true
	return best, true
}
