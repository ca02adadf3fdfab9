package engine

import (
	"testing"

	"containerquote/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateEmptySession(t *testing.T) {
	cm := mustCompile(t)
	ev := NewEvaluator(cm)

	snap, state := ev.Evaluate(model.NewSelectionState())

	assert.Equal(t, 5000.0, snap.Total)
	assert.Equal(t, "img-default", snap.ImageRef)
	assert.Equal(t, model.AngleFront, snap.ViewAngle)
	assert.Equal(t, []string{"size", "aircon", "extras"}, snap.VisibleQuestionKeys)
	assert.Empty(t, state.Answers)
}

// The concrete pricing scenario: base $5,000, aircon +$850 gating a fit-out
// question worth +$200; deselecting aircon drops both the answer and the
// contribution.
func TestAnswerChangeScenario(t *testing.T) {
	cm := mustCompile(t)
	ev := NewEvaluator(cm)
	state := model.NewSelectionState()

	snap, state := ev.OnAnswerChanged(state, model.AnswerEvent{
		QuestionKey: "aircon", Kind: model.EventSelectSingle, OptionSlug: "aircon_yes",
	})
	assert.Equal(t, 5850.0, snap.Total)
	assert.Contains(t, snap.VisibleQuestionKeys, "fitout")

	snap, state = ev.OnAnswerChanged(state, model.AnswerEvent{
		QuestionKey: "fitout", Kind: model.EventSelectSingle, OptionSlug: "fitout_basic",
	})
	assert.Equal(t, 6050.0, snap.Total)

	snap, state = ev.OnAnswerChanged(state, model.AnswerEvent{
		QuestionKey: "aircon", Kind: model.EventSelectSingle, OptionSlug: "aircon_no",
	})
	assert.Equal(t, 5000.0, snap.Total)
	assert.NotContains(t, snap.VisibleQuestionKeys, "fitout")
	_, orphan := state.Answers["fitout"]
	assert.False(t, orphan)
}

// The concrete image scenario: default D, rule {aircon_yes}/front -> X.
func TestViewAngleScenario(t *testing.T) {
	cm := mustCompile(t)
	ev := NewEvaluator(cm)
	state := model.NewSelectionState()

	snap, state := ev.Evaluate(state)
	assert.Equal(t, "img-default", snap.ImageRef)

	snap, state = ev.OnAnswerChanged(state, model.AnswerEvent{
		QuestionKey: "aircon", Kind: model.EventSelectSingle, OptionSlug: "aircon_yes",
	})
	assert.Equal(t, "img-aircon-front", snap.ImageRef)

	snap, state = ev.OnViewAngleChanged(state, model.AngleSide)
	assert.Equal(t, "img-default", snap.ImageRef)
	assert.Equal(t, model.AngleSide, snap.ViewAngle)
	assert.Equal(t, model.AngleSide, state.ViewAngle)
}

func TestViewAngleNoOpIdempotent(t *testing.T) {
	cm := mustCompile(t)
	ev := NewEvaluator(cm)
	state := model.NewSelectionState()

	before, state := ev.OnAnswerChanged(state, model.AnswerEvent{
		QuestionKey: "aircon", Kind: model.EventSelectSingle, OptionSlug: "aircon_yes",
	})

	after, _ := ev.OnViewAngleChanged(state, state.ViewAngle)
	assert.Equal(t, before.Total, after.Total)
	assert.Equal(t, before.VisibleQuestionKeys, after.VisibleQuestionKeys)
	assert.Equal(t, before.ImageRef, after.ImageRef)
}

func TestInvalidViewAngleIgnored(t *testing.T) {
	cm := mustCompile(t)
	ev := NewEvaluator(cm)
	state := model.NewSelectionState()

	snap, state := ev.OnViewAngleChanged(state, "top-down")
	assert.Equal(t, model.AngleFront, snap.ViewAngle)
	assert.Equal(t, model.AngleFront, state.ViewAngle)
}

func TestInvalidEventsLeaveStateUntouched(t *testing.T) {
	cm := mustCompile(t)
	ev := NewEvaluator(cm)

	state := model.NewSelectionState()
	baseline, state := ev.OnAnswerChanged(state, model.AnswerEvent{
		QuestionKey: "aircon", Kind: model.EventSelectSingle, OptionSlug: "aircon_yes",
	})

	events := []model.AnswerEvent{
		{QuestionKey: "ghost", Kind: model.EventSelectSingle, OptionSlug: "aircon_yes"},
		{QuestionKey: "aircon", Kind: model.EventSelectSingle, OptionSlug: "ghost_slug"},
		{QuestionKey: "extras", Kind: model.EventSelectSingle, OptionSlug: "extra_shelves"},
		{QuestionKey: "aircon", Kind: model.EventToggleMulti, OptionSlug: "aircon_yes"},
		{QuestionKey: "aircon", Kind: "replace-all", OptionSlug: "aircon_yes"},
	}

	for _, bad := range events {
		snap, next := ev.OnAnswerChanged(state, bad)
		assert.Equal(t, baseline.Total, snap.Total, "event %+v", bad)
		assert.Equal(t, baseline.VisibleQuestionKeys, snap.VisibleQuestionKeys, "event %+v", bad)
		assert.Equal(t, baseline.ImageRef, snap.ImageRef, "event %+v", bad)
		assert.Equal(t, state.Answers, next.Answers, "event %+v", bad)
	}
}

func TestToggleMultiAddAndRemove(t *testing.T) {
	cm := mustCompile(t)
	ev := NewEvaluator(cm)
	state := model.NewSelectionState()

	toggle := model.AnswerEvent{QuestionKey: "extras", Kind: model.EventToggleMulti, OptionSlug: "extra_shelves"}

	snap, state := ev.OnAnswerChanged(state, toggle)
	assert.Equal(t, 5120.0, snap.Total)
	require.True(t, state.Answers["extras"].Contains("extra_shelves"))

	snap, state = ev.OnAnswerChanged(state, toggle)
	assert.Equal(t, 5000.0, snap.Total)
	_, present := state.Answers["extras"]
	assert.False(t, present)
}

func TestClearEvent(t *testing.T) {
	cm := mustCompile(t)
	ev := NewEvaluator(cm)
	state := model.NewSelectionState()

	_, state = ev.OnAnswerChanged(state, model.AnswerEvent{
		QuestionKey: "size", Kind: model.EventSelectSingle, OptionSlug: "size_40",
	})
	snap, state := ev.OnAnswerChanged(state, model.AnswerEvent{
		QuestionKey: "size", Kind: model.EventClear,
	})

	assert.Equal(t, 5000.0, snap.Total)
	_, present := state.Answers["size"]
	assert.False(t, present)
}

func TestSummaryPills(t *testing.T) {
	cm := mustCompile(t)
	ev := NewEvaluator(cm)
	state := model.NewSelectionState()

	snap, state := ev.Evaluate(state)
	require.Len(t, snap.Summary, 2) // size and aircon carry showInSummary
	assert.Equal(t, "size", snap.Summary[0].QuestionKey)
	assert.False(t, snap.Summary[0].Answered)

	snap, _ = ev.OnAnswerChanged(state, model.AnswerEvent{
		QuestionKey: "size", Kind: model.EventSelectSingle, OptionSlug: "size_40",
	})
	assert.True(t, snap.Summary[0].Answered)
	assert.Equal(t, "40ft", snap.Summary[0].OptionLabel)
	assert.False(t, snap.Summary[1].Answered)
}

func TestSummaryCapsAtFourPills(t *testing.T) {
	cfg := testConfig()
	for i := range cfg.Questions {
		cfg.Questions[i].ShowInSummary = true
	}
	extra := cfg.Questions[0]
	extra.Key = "color"
	extra.Label = "Colour"
	extra.Options = []model.Option{
		{Slug: "color_blue", Label: "Blue", PriceSign: model.SignAddition},
	}
	cfg.Questions = append(cfg.Questions, extra)

	cm, err := Compile(cfg)
	require.NoError(t, err)
	ev := NewEvaluator(cm)

	snap, _ := ev.Evaluate(model.NewSelectionState())
	assert.Len(t, snap.Summary, 4)
}

func TestSnapshotPriceAndImageShareCleanedState(t *testing.T) {
	cm := mustCompile(t)
	ev := NewEvaluator(cm)
	state := model.NewSelectionState()

	_, state = ev.OnAnswerChanged(state, model.AnswerEvent{
		QuestionKey: "aircon", Kind: model.EventSelectSingle, OptionSlug: "aircon_yes",
	})
	_, state = ev.OnAnswerChanged(state, model.AnswerEvent{
		QuestionKey: "fitout", Kind: model.EventSelectSingle, OptionSlug: "fitout_basic",
	})

	// One event flips the trigger: the same snapshot must drop the fit-out
	// answer, its price contribution, and the aircon image together.
	snap, _ := ev.OnAnswerChanged(state, model.AnswerEvent{
		QuestionKey: "aircon", Kind: model.EventSelectSingle, OptionSlug: "aircon_no",
	})
	assert.Equal(t, 5000.0, snap.Total)
	assert.Equal(t, "img-default", snap.ImageRef)
	_, present := snap.Answers["fitout"]
	assert.False(t, present)
}
