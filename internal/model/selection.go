package model

import "time"

// Answer is the recorded selection for one question. Exactly one shape is
// populated, decided by the question's declared input kind: Slug for single
// selects, Slugs for checkboxes. Never both.
type Answer struct {
	Slug  string   `json:"slug,omitempty" bson:"slug,omitempty"`
	Slugs []string `json:"slugs,omitempty" bson:"slugs,omitempty"`
}

// Selected returns the selected option slugs regardless of shape
func (a Answer) Selected() []string {
	if a.Slug != "" {
		return []string{a.Slug}
	}
	return a.Slugs
}

// Contains reports whether slug is currently selected
func (a Answer) Contains(slug string) bool {
	if a.Slug != "" {
		return a.Slug == slug
	}
	for _, s := range a.Slugs {
		if s == slug {
			return true
		}
	}
	return false
}

// Empty reports whether nothing is selected
func (a Answer) Empty() bool {
	return a.Slug == "" && len(a.Slugs) == 0
}

// SelectionState is the canonical record of one customer's current answers.
// It is the sole source of truth for evaluation; rendering is a projection
// of it. One state belongs to exactly one session and one product.
type SelectionState struct {
	Answers   map[string]Answer `json:"answers" bson:"answers"`
	ViewAngle ViewAngle         `json:"viewAngle" bson:"viewAngle"`
}

// NewSelectionState creates an empty state with the front angle active
func NewSelectionState() *SelectionState {
	return &SelectionState{
		Answers:   make(map[string]Answer),
		ViewAngle: AngleFront,
	}
}

// Clone returns a deep copy of the state
func (s *SelectionState) Clone() *SelectionState {
	out := &SelectionState{
		Answers:   make(map[string]Answer, len(s.Answers)),
		ViewAngle: s.ViewAngle,
	}
	for k, a := range s.Answers {
		if len(a.Slugs) > 0 {
			a.Slugs = append([]string(nil), a.Slugs...)
		}
		out.Answers[k] = a
	}
	return out
}

// EventKind defines the mutation carried by an answer-change event
type EventKind string

const (
	EventSelectSingle EventKind = "select-single"
	EventToggleMulti  EventKind = "toggle-multi"
	EventClear        EventKind = "clear"
)

// AnswerEvent is one storefront answer mutation
type AnswerEvent struct {
	QuestionKey string    `json:"questionKey"`
	Kind        EventKind `json:"kind"`
	OptionSlug  string    `json:"optionSlug,omitempty"`
}

// QuoteSession ties a SelectionState to one customer and one product.
// Discarded on leave; a product switch always creates a fresh session.
type QuoteSession struct {
	ID        string          `json:"id" bson:"_id,omitempty"`
	ProductID string          `json:"productId" bson:"productId"`
	ConfigID  string          `json:"configId" bson:"configId"`
	State     *SelectionState `json:"state" bson:"state"`
	CreatedAt time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt" bson:"updatedAt"`
}
