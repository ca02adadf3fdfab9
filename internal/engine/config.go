package engine

import (
	"containerquote/internal/model"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrMalformedConfig is returned when a configuration document cannot be
	// compiled. Fatal to the session: evaluation never runs on a partial model.
	ErrMalformedConfig = errors.New("malformed configuration")

	// ErrUnknownQuestion marks an event referencing a question key absent
	// from the compiled model (stale client state). Absorbed by the evaluator.
	ErrUnknownQuestion = errors.New("unknown question key")

	// ErrUnknownOption marks an event referencing an option slug absent from
	// its question. Absorbed by the evaluator.
	ErrUnknownOption = errors.New("unknown option slug")
)

// compiledRule is an ImageRule with its tag set indexed for subset checks
type compiledRule struct {
	rule *model.ImageRule
	tags map[string]struct{}
}

// ConfigModel is the immutable, validated, indexed form of one product
// configuration. Built once per session; all evaluation reads from it.
type ConfigModel struct {
	doc       *model.Configuration
	questions []*model.Question
	byKey     map[string]*model.Question
	options   map[string]map[string]*model.Option
	assembly  map[string]string // question key -> authoritative assembly slug
	rules     map[model.ViewAngle][]compiledRule
}

// Compile validates a configuration document and builds the indexed model.
// Image rules are sorted most-specific-first here, once, never at query time.
func Compile(doc *model.Configuration) (*ConfigModel, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrMalformedConfig)
	}

	cm := &ConfigModel{
		doc:      doc,
		byKey:    make(map[string]*model.Question, len(doc.Questions)),
		options:  make(map[string]map[string]*model.Option, len(doc.Questions)),
		assembly: make(map[string]string),
		rules:    make(map[model.ViewAngle][]compiledRule),
	}

	for i := range doc.Questions {
		q := &doc.Questions[i]
		if q.Key == "" {
			return nil, fmt.Errorf("%w: question %d has no key", ErrMalformedConfig, i)
		}
		if _, dup := cm.byKey[q.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate question key %q", ErrMalformedConfig, q.Key)
		}
		if !q.Kind.Valid() {
			return nil, fmt.Errorf("%w: question %q has invalid input kind %q", ErrMalformedConfig, q.Key, q.Kind)
		}

		slugs := make(map[string]*model.Option, len(q.Options))
		for j := range q.Options {
			opt := &q.Options[j]
			if opt.Slug == "" {
				return nil, fmt.Errorf("%w: question %q option %d has no slug", ErrMalformedConfig, q.Key, j)
			}
			if _, dup := slugs[opt.Slug]; dup {
				return nil, fmt.Errorf("%w: question %q has duplicate option slug %q", ErrMalformedConfig, q.Key, opt.Slug)
			}
			if opt.PriceDelta < 0 {
				return nil, fmt.Errorf("%w: question %q option %q has negative price delta", ErrMalformedConfig, q.Key, opt.Slug)
			}
			slugs[opt.Slug] = opt

			// Authoring UI prevents duplicate assembly roles, but the data
			// layer does not: the first assembly option is authoritative.
			if opt.Role == model.RoleAssembly {
				if _, taken := cm.assembly[q.Key]; !taken {
					cm.assembly[q.Key] = opt.Slug
				}
			}
		}

		cm.questions = append(cm.questions, q)
		cm.byKey[q.Key] = q
		cm.options[q.Key] = slugs
	}

	// Conditionals resolve against the full question set, so verify them
	// after indexing. Nesting beyond one level is rejected outright.
	for _, q := range cm.questions {
		cond := q.Conditional
		if cond == nil {
			continue
		}
		trigger, ok := cm.byKey[cond.DependsOnQuestionKey]
		if !ok {
			return nil, fmt.Errorf("%w: question %q depends on unknown question %q", ErrMalformedConfig, q.Key, cond.DependsOnQuestionKey)
		}
		if trigger.Key == q.Key {
			return nil, fmt.Errorf("%w: question %q depends on itself", ErrMalformedConfig, q.Key)
		}
		if trigger.Conditional != nil {
			return nil, fmt.Errorf("%w: question %q depends on conditional question %q (single-level nesting only)", ErrMalformedConfig, q.Key, trigger.Key)
		}
		if cond.RequiredOptionSlug == "" {
			return nil, fmt.Errorf("%w: question %q conditional has no required option slug", ErrMalformedConfig, q.Key)
		}
	}

	for i := range doc.ImageRules {
		r := &doc.ImageRules[i]
		if !r.ViewAngle.Valid() {
			return nil, fmt.Errorf("%w: image rule %d has invalid view angle %q", ErrMalformedConfig, i, r.ViewAngle)
		}
		tags := make(map[string]struct{}, len(r.MatchTags))
		for _, t := range r.MatchTags {
			tags[t] = struct{}{}
		}
		cm.rules[r.ViewAngle] = append(cm.rules[r.ViewAngle], compiledRule{rule: r, tags: tags})
	}

	// Most-specific-first; stable keeps authoring order on ties.
	for angle := range cm.rules {
		rs := cm.rules[angle]
		sort.SliceStable(rs, func(i, j int) bool {
			return len(rs[i].tags) > len(rs[j].tags)
		})
	}

	return cm, nil
}

// Questions returns the ordered question list
func (cm *ConfigModel) Questions() []*model.Question {
	return cm.questions
}

// Question looks up a question by key
func (cm *ConfigModel) Question(key string) (*model.Question, bool) {
	q, ok := cm.byKey[key]
	return q, ok
}

// Option looks up an option by question key and slug
func (cm *ConfigModel) Option(questionKey, slug string) (*model.Option, bool) {
	opts, ok := cm.options[questionKey]
	if !ok {
		return nil, false
	}
	opt, ok := opts[slug]
	return opt, ok
}

// AssemblySlug returns the authoritative assembly option slug for a
// question, if one is authored
func (cm *ConfigModel) AssemblySlug(questionKey string) (string, bool) {
	slug, ok := cm.assembly[questionKey]
	return slug, ok
}

// RulesFor returns the pre-sorted image rules for one view angle
func (cm *ConfigModel) RulesFor(angle model.ViewAngle) []compiledRule {
	return cm.rules[angle]
}

// BasePrice returns the configuration's base price
func (cm *ConfigModel) BasePrice() float64 {
	return cm.doc.BasePrice
}

// DefaultImageRef returns the configuration's default image reference
func (cm *ConfigModel) DefaultImageRef() string {
	return cm.doc.DefaultImageRef
}

// ConfigID returns the source document ID
func (cm *ConfigModel) ConfigID() string {
	return cm.doc.ID
}

// ProductID returns the product the configuration belongs to
func (cm *ConfigModel) ProductID() string {
	return cm.doc.ProductID
}
