package engine

import (
	"fmt"
	"strings"

	"containerquote/internal/model"
)

const maxSummaryPills = 4

// Evaluator is the single entry point for evaluation. Every answer-change
// and view-angle event goes through it; price and image are never computed
// anywhere else, which keeps the three concerns in sync.
//
// Each event runs one two-phase cycle: mutate, then resolve-and-clean, then
// derive price and image from the same cleaned state. The cycle always
// terminates in one resolver pass (single-level conditional invariant).
type Evaluator struct {
	cm *ConfigModel
}

// NewEvaluator creates an evaluator over a compiled configuration
func NewEvaluator(cm *ConfigModel) *Evaluator {
	return &Evaluator{cm: cm}
}

// Evaluate derives a snapshot from the given state without mutating answers.
// Used for the initial snapshot of a fresh session and after ignored events.
func (e *Evaluator) Evaluate(state *model.SelectionState) (*model.Snapshot, *model.SelectionState) {
	res := ResolveVisibility(e.cm, state)
	total := ComputeTotal(e.cm, res.Visible, res.State)
	image := SelectImage(e.cm, res.Visible, res.State, res.State.ViewAngle)

	snap := &model.Snapshot{
		VisibleQuestionKeys: e.cm.VisibleKeys(res.Visible),
		Total:               total,
		ImageRef:            image,
		ViewAngle:           res.State.ViewAngle,
		Answers:             res.State.Answers,
		Summary:             e.summary(res),
	}
	return snap, res.State
}

// OnAnswerChanged applies one answer mutation and returns the resulting
// snapshot together with the new canonical state. Events referencing an
// unknown question key or option slug, or carrying a kind that does not
// match the question's declared input kind, are ignored: the previous state
// is preserved and its snapshot returned unchanged.
func (e *Evaluator) OnAnswerChanged(prev *model.SelectionState, ev model.AnswerEvent) (*model.Snapshot, *model.SelectionState) {
	next := prev.Clone()
	if err := e.applyEvent(next, ev); err != nil {
		return e.Evaluate(prev)
	}
	return e.Evaluate(next)
}

// OnViewAngleChanged switches the active view angle and re-derives the
// snapshot. Answers are untouched, so visibility and total are unchanged by
// construction; only the image can differ. Invalid angles are ignored.
func (e *Evaluator) OnViewAngleChanged(prev *model.SelectionState, angle model.ViewAngle) (*model.Snapshot, *model.SelectionState) {
	if !angle.Valid() {
		return e.Evaluate(prev)
	}
	next := prev.Clone()
	next.ViewAngle = angle
	return e.Evaluate(next)
}

func (e *Evaluator) applyEvent(state *model.SelectionState, ev model.AnswerEvent) error {
	q, ok := e.cm.Question(ev.QuestionKey)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, ev.QuestionKey)
	}

	switch ev.Kind {
	case model.EventClear:
		delete(state.Answers, q.Key)
		return nil

	case model.EventSelectSingle:
		if q.Kind.Multi() {
			return fmt.Errorf("%w: %q is not single-select", ErrUnknownQuestion, q.Key)
		}
		if _, ok := e.cm.Option(q.Key, ev.OptionSlug); !ok {
			return fmt.Errorf("%w: %q on question %q", ErrUnknownOption, ev.OptionSlug, q.Key)
		}
		state.Answers[q.Key] = model.Answer{Slug: ev.OptionSlug}
		return nil

	case model.EventToggleMulti:
		if !q.Kind.Multi() {
			return fmt.Errorf("%w: %q is not multi-select", ErrUnknownQuestion, q.Key)
		}
		if _, ok := e.cm.Option(q.Key, ev.OptionSlug); !ok {
			return fmt.Errorf("%w: %q on question %q", ErrUnknownOption, ev.OptionSlug, q.Key)
		}
		ans := state.Answers[q.Key]
		slugs := make([]string, 0, len(ans.Slugs)+1)
		removed := false
		for _, s := range ans.Slugs {
			if s == ev.OptionSlug {
				removed = true
				continue
			}
			slugs = append(slugs, s)
		}
		if !removed {
			slugs = append(slugs, ev.OptionSlug)
		}
		if len(slugs) == 0 {
			delete(state.Answers, q.Key)
		} else {
			state.Answers[q.Key] = model.Answer{Slugs: slugs}
		}
		return nil

	default:
		return fmt.Errorf("%w: unsupported event kind %q", ErrUnknownQuestion, ev.Kind)
	}
}

// summary builds the storefront pill strip: the first maxSummaryPills
// showInSummary questions with their selected labels, or a placeholder pill
// when unanswered or hidden.
func (e *Evaluator) summary(res Resolution) []model.SummaryPill {
	pills := make([]model.SummaryPill, 0, maxSummaryPills)
	for _, q := range e.cm.Questions() {
		if !q.ShowInSummary {
			continue
		}
		if len(pills) == maxSummaryPills {
			break
		}

		pill := model.SummaryPill{QuestionKey: q.Key, QuestionLabel: q.Label}
		if res.IsVisible(q.Key) {
			if ans, ok := res.State.Answers[q.Key]; ok && !ans.Empty() {
				labels := make([]string, 0, len(ans.Selected()))
				for _, slug := range ans.Selected() {
					if opt, ok := e.cm.Option(q.Key, slug); ok {
						labels = append(labels, opt.Label)
					}
				}
				pill.OptionLabel = strings.Join(labels, ", ")
				pill.Answered = len(labels) > 0
			}
		}
		pills = append(pills, pill)
	}
	return pills
}
