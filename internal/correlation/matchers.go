package correlation

import (
	"strings"

	"scenario-planner/internal/fieldindex"
	"scenario-planner/internal/match"
	"scenario-planner/internal/scenario"
)

// outcome is what a matcher found for one capture.
type outcome struct {
	kind       MatchKind
	confidence float64
	// candidates are ranked best first.
	candidates match.CandidateList
}

func (o outcome) path() string {
	return o.candidates.Best().Path
}

// matcher tries one resolution strategy. fi is nil when the response has
// no schema.
type matcher func(c scenario.Capture, fi *fieldindex.Index) (outcome, bool)

// matchers run in priority order; the first hit wins. Only the first two
// look at the author's source field, the name-based tiers match the
// variable itself.
var matchers = []matcher{
	matchExplicitPath,
	matchSourceField,
	matchExact,
	matchCaseInsensitive,
	matchIDSuffix,
	matchNested,
}

func matchExplicitPath(c scenario.Capture, _ *fieldindex.Index) (outcome, bool) {
	if !c.IsExplicit() {
		return outcome{}, false
	}

	return outcome{
		kind:       Explicit,
		confidence: ConfidenceExplicit,
		candidates: match.CandidateList{{Name: c.Variable, Path: c.Path, Score: ConfidenceExplicit}},
	}, true
}

// matchSourceField looks up the author's source field literally, either as
// a field name or as a dotted path such as "user.id".
func matchSourceField(c scenario.Capture, fi *fieldindex.Index) (outcome, bool) {
	if c.Source == "" || fi == nil {
		return outcome{}, false
	}

	list := candidates(fi.Lookup(c.Source), ConfidenceExplicit)

	if len(list) == 0 && strings.Contains(c.Source, ".") {
		if e, ok := fi.At(fieldindex.FromDotted(c.Source)); ok {
			list = candidates([]fieldindex.Entry{e}, ConfidenceExplicit)
		}
	}

	if len(list) == 0 {
		return outcome{}, false
	}

	return outcome{kind: Explicit, confidence: ConfidenceExplicit, candidates: list.Rank()}, true
}

func matchExact(c scenario.Capture, fi *fieldindex.Index) (outcome, bool) {
	if fi == nil {
		return outcome{}, false
	}

	list := candidates(fi.Lookup(c.Variable), ConfidenceExact)
	if len(list) == 0 {
		return outcome{}, false
	}

	return outcome{kind: Exact, confidence: ConfidenceExact, candidates: list.Rank()}, true
}

func matchCaseInsensitive(c scenario.Capture, fi *fieldindex.Index) (outcome, bool) {
	if fi == nil {
		return outcome{}, false
	}

	name := c.Variable

	list := filter(fi, ConfidenceCaseInsensitive, func(e fieldindex.Entry) bool {
		return strings.EqualFold(e.Field, name)
	})
	if len(list) == 0 {
		return outcome{}, false
	}

	return outcome{kind: CaseInsensitive, confidence: ConfidenceCaseInsensitive, candidates: list.Rank()}, true
}

// matchIDSuffix maps "userId" to an "id" field. An id nested under a key
// named like the prefix ("user", "users") ranks above any other id.
func matchIDSuffix(c scenario.Capture, fi *fieldindex.Index) (outcome, bool) {
	if fi == nil {
		return outcome{}, false
	}

	prefix, ok := match.StripIDSuffix(c.Variable)
	if !ok {
		return outcome{}, false
	}

	var list match.CandidateList

	for _, e := range fi.Entries() {
		if !strings.EqualFold(e.Field, "id") {
			continue
		}

		score := ConfidenceIDSuffix
		if match.SameStem(e.Path.Parent(), prefix) {
			score += 1
		}

		list = append(list, match.Candidate{Name: e.Field, Path: e.Path.JSONPath(), Score: score, Order: e.Order})
	}

	if len(list) == 0 {
		return outcome{}, false
	}

	return outcome{kind: IDSuffix, confidence: ConfidenceIDSuffix, candidates: list.Rank()}, true
}

func matchNested(c scenario.Capture, fi *fieldindex.Index) (outcome, bool) {
	if fi == nil {
		return outcome{}, false
	}

	needle := strings.ToLower(c.Variable)
	if needle == "" {
		return outcome{}, false
	}

	list := filter(fi, ConfidenceNested, func(e fieldindex.Entry) bool {
		return strings.Contains(strings.ToLower(e.Field), needle)
	})
	if len(list) == 0 {
		return outcome{}, false
	}

	return outcome{kind: Nested, confidence: ConfidenceNested, candidates: list.Rank()}, true
}

func candidates(entries []fieldindex.Entry, score float64) match.CandidateList {
	list := make(match.CandidateList, 0, len(entries))
	for _, e := range entries {
		list = append(list, match.Candidate{Name: e.Field, Path: e.Path.JSONPath(), Score: score, Order: e.Order})
	}

	return list
}

func filter(fi *fieldindex.Index, score float64, keep func(fieldindex.Entry) bool) match.CandidateList {
	var list match.CandidateList

	for _, e := range fi.Entries() {
		if keep(e) {
			list = append(list, match.Candidate{Name: e.Field, Path: e.Path.JSONPath(), Score: score, Order: e.Order})
		}
	}

	return list
}
