package matcher

import (
	"fmt"
	"strings"
)

// Category tags a keyword with the bucket it is scored in.
type Category string

const (
	CategorySkill      Category = "skill"
	CategoryExperience Category = "experience"
)

// Default category weights.
const (
	DefaultSkillWeight      = 2
	DefaultExperienceWeight = 1
)

// ScoringMode selects what the weighted hit count is normalised against.
type ScoringMode string

const (
	// ScoringModeTaxonomy divides by the weight of every keyword in the
	// taxonomy, whether or not the posting mentions it.
	ScoringModeTaxonomy ScoringMode = "taxonomy"
	// ScoringModePosting divides by the weight of the distinct taxonomy
	// keywords that appear in the job description.
	ScoringModePosting ScoringMode = "posting"
)

// ParseScoringMode maps a config string to a ScoringMode.
// An empty string selects ScoringModeTaxonomy.
func ParseScoringMode(s string) (ScoringMode, error) {
	switch ScoringMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScoringModeTaxonomy:
		return ScoringModeTaxonomy, nil
	case ScoringModePosting:
		return ScoringModePosting, nil
	default:
		return "", fmt.Errorf("unknown scoring mode: %q", s)
	}
}

// DefaultSkillKeywords is the built-in skill list.
// "node.js" can never equal a token because '.' is a separator, but it
// still counts toward the maximum score.
var DefaultSkillKeywords = []string{
	"javascript",
	"react",
	"node",
	"nodejs",
	"node.js",
	"typescript",
	"html",
	"css",
	"redux",
	"mongodb",
	"express",
	"next",
	"nextjs",
	"rest",
	"api",
	"restful",
	"docker",
	"kubernetes",
}

// DefaultExperienceKeywords is the built-in experience list.
var DefaultExperienceKeywords = []string{
	"experience",
	"projects",
	"built",
	"maintained",
	"developed",
	"implemented",
	"designed",
}

// Taxonomy is the immutable set of recognised keywords and their weights.
// Build it with NewTaxonomy; the zero value is an empty taxonomy.
type Taxonomy struct {
	skills           []string
	experience       []string
	skillWeight      int
	experienceWeight int

	skillSet      map[string]struct{}
	experienceSet map[string]struct{}
}

// TaxonomyOption customises a Taxonomy under construction.
type TaxonomyOption func(*Taxonomy)

// WithWeights overrides the category weights.
func WithWeights(skill, experience int) TaxonomyOption {
	return func(t *Taxonomy) {
		t.skillWeight = skill
		t.experienceWeight = experience
	}
}

// NewTaxonomy normalises both keyword lists (trim, lower-case, drop blanks
// and repeats) keeping first-seen order. A keyword may appear in both lists.
func NewTaxonomy(skills, experience []string, opts ...TaxonomyOption) (*Taxonomy, error) {
	t := &Taxonomy{
		skillWeight:      DefaultSkillWeight,
		experienceWeight: DefaultExperienceWeight,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.skillWeight < 1 || t.experienceWeight < 1 {
		return nil, fmt.Errorf("taxonomy weights must be positive (skill=%d, experience=%d)", t.skillWeight, t.experienceWeight)
	}

	t.skills, t.skillSet = normalizeKeywords(skills)
	t.experience, t.experienceSet = normalizeKeywords(experience)
	return t, nil
}

// DefaultTaxonomy returns the built-in taxonomy.
func DefaultTaxonomy() *Taxonomy {
	t, _ := NewTaxonomy(DefaultSkillKeywords, DefaultExperienceKeywords)
	return t
}

func normalizeKeywords(in []string) ([]string, map[string]struct{}) {
	out := make([]string, 0, len(in))
	set := make(map[string]struct{}, len(in))
	for _, kw := range in {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, dup := set[kw]; dup {
			continue
		}
		set[kw] = struct{}{}
		out = append(out, kw)
	}
	return out, set
}

// SkillKeywords returns a copy of the skill keywords in order.
func (t *Taxonomy) SkillKeywords() []string {
	return append([]string(nil), t.skills...)
}

// ExperienceKeywords returns a copy of the experience keywords in order.
func (t *Taxonomy) ExperienceKeywords() []string {
	return append([]string(nil), t.experience...)
}

func (t *Taxonomy) SkillWeight() int      { return t.skillWeight }
func (t *Taxonomy) ExperienceWeight() int { return t.experienceWeight }

// Categories reports every category the keyword belongs to.
func (t *Taxonomy) Categories(keyword string) []Category {
	var cats []Category
	if t.IsSkill(keyword) {
		cats = append(cats, CategorySkill)
	}
	if t.IsExperience(keyword) {
		cats = append(cats, CategoryExperience)
	}
	return cats
}

func (t *Taxonomy) IsSkill(token string) bool {
	_, ok := t.skillSet[token]
	return ok
}

func (t *Taxonomy) IsExperience(token string) bool {
	_, ok := t.experienceSet[token]
	return ok
}

// MaxWeight is the score of a resume that hits every keyword once.
func (t *Taxonomy) MaxWeight() int {
	return len(t.skills)*t.skillWeight + len(t.experience)*t.experienceWeight
}

// Size is the total number of keywords across both categories.
func (t *Taxonomy) Size() int {
	return len(t.skills) + len(t.experience)
}
