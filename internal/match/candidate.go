package match

import (
	"sort"
	"strings"
)

// Candidate is one response field that may satisfy a capture.
type Candidate struct {
	// Name is the field name as it appears in the field index.
	Name string
	// Path is the rendered extraction path reaching the field.
	Path string
	// Score ranks candidates inside one matching tier (higher is better).
	Score float64
	// Order is the breadth-first discovery position of the path.
	// Shallower paths have lower orders.
	Order int
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Rank sorts the list in place by score, then discovery order, and returns it.
func (c CandidateList) Rank() CandidateList {
	sort.Stable(c)

	return c
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by discovery order so shallower paths win ties.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Order < c[j].Order
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// Tied returns how many candidates share the best score.
func (c CandidateList) Tied() int {
	if len(c) == 0 {
		return 0
	}

	n := 1
	for n < len(c) && c[n].Score == c[0].Score {
		n++
	}

	return n
}

// IsAmbiguous returns true if more than one candidate shares the best score.
func (c CandidateList) IsAmbiguous() bool {
	return c.Tied() > 1
}

// RunnerUp returns the second candidate of a ranked list, or nil.
func (c CandidateList) RunnerUp() *Candidate {
	if len(c) < 2 {
		return nil
	}

	return &c[1]
}

// AboveThreshold returns candidates with a score at or above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// Suggest returns up to limit names from keys that look like target,
// most similar first. Names scoring below DefaultMinScore are dropped.
func Suggest(target string, keys []string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	var list CandidateList

	for i, key := range keys {
		score := max(
			NameSimilarity(target, key),
			StemSimilarity(target, key),
		)
		if strings.Contains(NormalizeIdent(key), NormalizeIdent(target)) {
			score = max(score, DefaultMinScore)
		}

		list = append(list, Candidate{Name: key, Score: score, Order: i})
	}

	list = list.Rank().AboveThreshold(DefaultMinScore)

	seen := make(map[string]bool, len(list))
	out := make([]string, 0, limit)

	for _, cand := range list {
		if seen[cand.Name] {
			continue
		}

		seen[cand.Name] = true
		out = append(out, cand.Name)

		if len(out) == limit {
			break
		}
	}

	return out
}

// DefaultMinScore is the minimum similarity for a name to be suggested.
const DefaultMinScore = 0.6
