// Package taxonomy builds the keyword taxonomy used by the matcher from
// configuration: an object in S3-compatible storage, a local YAML file, or
// the built-in lists.
package taxonomy

import (
	"context"
	"fmt"
	"os"
	"strings"

	"resume-analyzer-backend/internal/domain"
	"resume-analyzer-backend/internal/matcher"

	"gopkg.in/yaml.v3"
)

// ObjectGetter fetches a whole object from a bucket.
type ObjectGetter interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// Source names where the taxonomy comes from.
type Source struct {
	File     string
	Bucket   string
	Key      string
	Mode     string // overrides scoring_mode from the document when set
	Fallback bool   // use the built-in taxonomy if the configured source fails
}

// Document is the on-disk YAML representation.
//
//	skills: [react, docker]
//	experience: [built]
//	skill_weight: 2
//	experience_weight: 1
//	scoring_mode: taxonomy
type Document struct {
	Skills           []string `yaml:"skills"`
	Experience       []string `yaml:"experience"`
	SkillWeight      int      `yaml:"skill_weight,omitempty"`
	ExperienceWeight int      `yaml:"experience_weight,omitempty"`
	ScoringMode      string   `yaml:"scoring_mode,omitempty"`
}

// Loaded is a taxonomy together with the scoring mode it asks for and the
// place it was read from.
type Loaded struct {
	Taxonomy *matcher.Taxonomy
	Mode     matcher.ScoringMode
	Origin   string
}

// Matcher returns a matcher bound to the loaded taxonomy and mode.
func (l *Loaded) Matcher() *matcher.Matcher {
	return matcher.New(l.Taxonomy, l.Mode)
}

// Info describes the loaded taxonomy for API clients.
func (l *Loaded) Info() domain.TaxonomyInfo {
	return domain.TaxonomyInfo{
		Skills:           l.Taxonomy.SkillKeywords(),
		Experience:       l.Taxonomy.ExperienceKeywords(),
		SkillWeight:      l.Taxonomy.SkillWeight(),
		ExperienceWeight: l.Taxonomy.ExperienceWeight(),
		ScoringMode:      string(l.Mode),
		Origin:           l.Origin,
	}
}

// Load resolves src in order S3 object, local file, built-in default.
// objects may be nil when no bucket is configured.
func Load(ctx context.Context, src Source, objects ObjectGetter) (*Loaded, error) {
	var (
		data   []byte
		origin string
		err    error
	)

	switch {
	case src.Bucket != "":
		origin = fmt.Sprintf("s3://%s/%s", src.Bucket, src.Key)
		if objects == nil {
			err = fmt.Errorf("taxonomy bucket %q configured without a storage client", src.Bucket)
			break
		}
		data, err = objects.GetObject(ctx, src.Bucket, src.Key)
	case src.File != "":
		origin = src.File
		data, err = os.ReadFile(src.File)
	default:
		return builtin(src.Mode)
	}

	var loaded *Loaded
	if err == nil {
		loaded, err = Parse(data, src.Mode)
	}
	if err != nil {
		if src.Fallback {
			return builtin(src.Mode)
		}
		return nil, fmt.Errorf("failed to load taxonomy from %s: %w", origin, err)
	}

	loaded.Origin = origin
	return loaded, nil
}

// Parse decodes a YAML taxonomy document. modeOverride, when non-empty,
// takes precedence over the document's scoring_mode.
func Parse(data []byte, modeOverride string) (*Loaded, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid taxonomy document: %w", err)
	}
	if len(doc.Skills) == 0 && len(doc.Experience) == 0 {
		return nil, fmt.Errorf("taxonomy document has no keywords")
	}

	skillWeight, expWeight := doc.SkillWeight, doc.ExperienceWeight
	if skillWeight == 0 {
		skillWeight = matcher.DefaultSkillWeight
	}
	if expWeight == 0 {
		expWeight = matcher.DefaultExperienceWeight
	}

	tax, err := matcher.NewTaxonomy(doc.Skills, doc.Experience, matcher.WithWeights(skillWeight, expWeight))
	if err != nil {
		return nil, err
	}

	modeStr := doc.ScoringMode
	if strings.TrimSpace(modeOverride) != "" {
		modeStr = modeOverride
	}
	mode, err := matcher.ParseScoringMode(modeStr)
	if err != nil {
		return nil, err
	}

	return &Loaded{Taxonomy: tax, Mode: mode}, nil
}

// Marshal renders a taxonomy in the YAML document format.
func Marshal(tax *matcher.Taxonomy, mode matcher.ScoringMode) ([]byte, error) {
	return yaml.Marshal(Document{
		Skills:           tax.SkillKeywords(),
		Experience:       tax.ExperienceKeywords(),
		SkillWeight:      tax.SkillWeight(),
		ExperienceWeight: tax.ExperienceWeight(),
		ScoringMode:      string(mode),
	})
}

func builtin(modeStr string) (*Loaded, error) {
	mode, err := matcher.ParseScoringMode(modeStr)
	if err != nil {
		return nil, err
	}
	return &Loaded{
		Taxonomy: matcher.DefaultTaxonomy(),
		Mode:     mode,
		Origin:   "builtin",
	}, nil
}
