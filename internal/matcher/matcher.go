// Package matcher scores a resume against a job description by weighted
// keyword overlap.
//
// Only job-description tokens that belong to the taxonomy take part in
// scoring and in the matched/missing lists; every other word is ignored.
// All functions are pure and safe for concurrent use.
package matcher

import "math"

// Result is the outcome of one match.
type Result struct {
	MatchPercentage int      `json:"matchPercentage"`
	MatchedWords    []string `json:"matchedWords"`
	MissingWords    []string `json:"missingWords"`

	SkillHits      int `json:"skillHits"`
	ExperienceHits int `json:"experienceHits"`
	TotalWeighted  int `json:"totalWeighted"`
	MaxPossible    int `json:"maxPossible"`
}

// Matcher binds a taxonomy to a scoring mode.
type Matcher struct {
	taxonomy *Taxonomy
	mode     ScoringMode
}

// New returns a Matcher. A nil taxonomy behaves as an empty one.
func New(taxonomy *Taxonomy, mode ScoringMode) *Matcher {
	if taxonomy == nil {
		taxonomy = &Taxonomy{}
	}
	if mode == "" {
		mode = ScoringModeTaxonomy
	}
	return &Matcher{taxonomy: taxonomy, mode: mode}
}

// Match scores resumeText against jdText.
func (m *Matcher) Match(resumeText, jdText string) Result {
	return compute(resumeText, jdText, m.taxonomy, m.mode)
}

// ComputeMatch scores with the taxonomy-wide normalisation.
func ComputeMatch(resumeText, jdText string, taxonomy *Taxonomy) Result {
	return New(taxonomy, ScoringModeTaxonomy).Match(resumeText, jdText)
}

func compute(resumeText, jdText string, tax *Taxonomy, mode ScoringMode) Result {
	resumeTokens := tokenSet(resumeText)
	jdTokens := Tokenize(jdText)

	matched := newOrderedSet()
	missing := newOrderedSet()
	seen := newOrderedSet()

	var skillHits, expHits int
	for _, token := range jdTokens {
		_, inResume := resumeTokens[token]

		if tax.IsSkill(token) {
			seen.add(token)
			if inResume {
				skillHits++
				matched.add(token)
			} else {
				missing.add(token)
			}
		}
		if tax.IsExperience(token) {
			seen.add(token)
			if inResume {
				expHits++
				matched.add(token)
			} else {
				missing.add(token)
			}
		}
	}

	res := Result{
		MatchedWords:   matched.items,
		MissingWords:   missing.items,
		SkillHits:      skillHits,
		ExperienceHits: expHits,
	}

	switch mode {
	case ScoringModePosting:
		// Each distinct keyword of the posting counts once.
		res.TotalWeighted = weightOf(matched.items, tax)
		res.MaxPossible = weightOf(seen.items, tax)
	default:
		res.TotalWeighted = skillHits*tax.skillWeight + expHits*tax.experienceWeight
		res.MaxPossible = tax.MaxWeight()
	}

	res.MatchPercentage = percentage(res.TotalWeighted, res.MaxPossible)
	return res
}

func weightOf(keywords []string, tax *Taxonomy) int {
	total := 0
	for _, kw := range keywords {
		if tax.IsSkill(kw) {
			total += tax.skillWeight
		}
		if tax.IsExperience(kw) {
			total += tax.experienceWeight
		}
	}
	return total
}

// percentage rounds weighted/max to an integer in [0, 100].
// A zero maximum yields 0.
func percentage(weighted, max int) int {
	if max <= 0 {
		return 0
	}
	pct := math.Round(math.Min(100, float64(weighted)/float64(max)*100))
	if pct < 0 {
		return 0
	}
	return int(pct)
}

type orderedSet struct {
	items []string
	index map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{items: []string{}, index: map[string]struct{}{}}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.index[v]; ok {
		return
	}
	s.index[v] = struct{}{}
	s.items = append(s.items, v)
}
