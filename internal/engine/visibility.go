package engine

import "containerquote/internal/model"

// Resolution is the outcome of one visibility pass: the visible question
// keys, a cleaned copy of the state with orphan answers removed, and
// whether cleaning changed anything.
type Resolution struct {
	Visible map[string]struct{}
	State   *model.SelectionState
	Changed bool
}

// IsVisible reports whether a question key is in the visible set
func (r Resolution) IsVisible(key string) bool {
	_, ok := r.Visible[key]
	return ok
}

// ResolveVisibility computes the visible question set for the current
// answers and strips answers that belong to hidden or unknown questions.
//
// A question without a conditional is always visible. A conditional question
// is visible iff the trigger question's current answer contains the required
// slug. Trigger questions are themselves unconditional (enforced at compile
// time), so clearing an orphan answer can never hide another question and a
// single pass suffices.
func ResolveVisibility(cm *ConfigModel, state *model.SelectionState) Resolution {
	visible := make(map[string]struct{}, len(cm.Questions()))
	for _, q := range cm.Questions() {
		if q.Conditional == nil {
			visible[q.Key] = struct{}{}
			continue
		}
		ans, ok := state.Answers[q.Conditional.DependsOnQuestionKey]
		if ok && ans.Contains(q.Conditional.RequiredOptionSlug) {
			visible[q.Key] = struct{}{}
		}
	}

	cleaned := state.Clone()
	changed := false
	for key := range cleaned.Answers {
		if _, ok := visible[key]; !ok {
			delete(cleaned.Answers, key)
			changed = true
		}
	}

	return Resolution{Visible: visible, State: cleaned, Changed: changed}
}

// VisibleKeys returns the visible question keys in configuration order
func (cm *ConfigModel) VisibleKeys(visible map[string]struct{}) []string {
	keys := make([]string, 0, len(visible))
	for _, q := range cm.Questions() {
		if _, ok := visible[q.Key]; ok {
			keys = append(keys, q.Key)
		}
	}
	return keys
}
