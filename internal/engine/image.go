package engine

import "containerquote/internal/model"

// SelectImage picks the image for the current selection and view angle.
//
// Active tags are the slugs of affectsImage options selected under visible
// questions. Among the angle's pre-sorted rules the first whose non-empty
// tag set is fully contained in the active set wins. Failing that, the rule
// with the largest non-zero overlap wins, first-in-sorted-order on ties.
// Failing that, an authored empty-tag rule acts as the angle's fallback.
// Failing everything, the configuration default.
//
// Pure function of its inputs; callers may memoize on (activeTags, angle).
func SelectImage(cm *ConfigModel, visible map[string]struct{}, state *model.SelectionState, angle model.ViewAngle) string {
	active := ActiveTags(cm, visible, state)
	rules := cm.RulesFor(angle)

	for _, r := range rules {
		if len(r.tags) == 0 {
			continue
		}
		if containsAll(active, r.tags) {
			return r.rule.ImageRef
		}
	}

	bestRef := ""
	bestOverlap := 0
	for _, r := range rules {
		n := 0
		for t := range r.tags {
			if _, ok := active[t]; ok {
				n++
			}
		}
		if n > bestOverlap {
			bestOverlap = n
			bestRef = r.rule.ImageRef
		}
	}
	if bestOverlap > 0 {
		return bestRef
	}

	for _, r := range rules {
		if len(r.tags) == 0 {
			return r.rule.ImageRef
		}
	}

	return cm.DefaultImageRef()
}

// ActiveTags collects the affectsImage option slugs selected under visible
// questions
func ActiveTags(cm *ConfigModel, visible map[string]struct{}, state *model.SelectionState) map[string]struct{} {
	active := make(map[string]struct{})
	for _, q := range cm.Questions() {
		if _, ok := visible[q.Key]; !ok {
			continue
		}
		ans, ok := state.Answers[q.Key]
		if !ok {
			continue
		}
		for _, slug := range ans.Selected() {
			opt, ok := cm.Option(q.Key, slug)
			if ok && opt.AffectsImage {
				active[slug] = struct{}{}
			}
		}
	}
	return active
}

func containsAll(set, subset map[string]struct{}) bool {
	for t := range subset {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}
