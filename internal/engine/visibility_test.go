package engine

import (
	"testing"

	"containerquote/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveVisibilityUnconditionalAlwaysVisible(t *testing.T) {
	cm := mustCompile(t)
	state := model.NewSelectionState()

	res := ResolveVisibility(cm, state)

	assert.True(t, res.IsVisible("size"))
	assert.True(t, res.IsVisible("aircon"))
	assert.True(t, res.IsVisible("extras"))
	assert.False(t, res.IsVisible("fitout"))
	assert.False(t, res.Changed)
	assert.Equal(t, []string{"size", "aircon", "extras"}, cm.VisibleKeys(res.Visible))
}

func TestResolveVisibilityConditionalShown(t *testing.T) {
	cm := mustCompile(t)
	state := model.NewSelectionState()
	state.Answers["aircon"] = model.Answer{Slug: "aircon_yes"}

	res := ResolveVisibility(cm, state)

	assert.True(t, res.IsVisible("fitout"))
	assert.False(t, res.Changed)
	assert.Equal(t, []string{"size", "aircon", "fitout", "extras"}, cm.VisibleKeys(res.Visible))
}

func TestResolveVisibilityClearsOrphanAnswers(t *testing.T) {
	cm := mustCompile(t)
	state := model.NewSelectionState()
	state.Answers["aircon"] = model.Answer{Slug: "aircon_no"}
	state.Answers["fitout"] = model.Answer{Slug: "fitout_basic"}

	res := ResolveVisibility(cm, state)

	assert.False(t, res.IsVisible("fitout"))
	assert.True(t, res.Changed)
	_, stillThere := res.State.Answers["fitout"]
	assert.False(t, stillThere)

	// The input state is never mutated; the cleaned copy is separate.
	_, inInput := state.Answers["fitout"]
	assert.True(t, inInput)
}

func TestResolveVisibilityDropsUnknownAnswerKeys(t *testing.T) {
	cm := mustCompile(t)
	state := model.NewSelectionState()
	state.Answers["deleted_question"] = model.Answer{Slug: "whatever"}

	res := ResolveVisibility(cm, state)

	assert.True(t, res.Changed)
	assert.Empty(t, res.State.Answers)
}

func TestResolveVisibilityMultiSelectTrigger(t *testing.T) {
	cfg := testConfig()
	// Gate fit-out on a checkbox selection instead of a radio one.
	cfg.Questions[2].Conditional = &model.Conditional{
		DependsOnQuestionKey: "extras",
		RequiredOptionSlug:   "extra_skylight",
	}
	cm, err := Compile(cfg)
	require.NoError(t, err)

	state := model.NewSelectionState()
	state.Answers["extras"] = model.Answer{Slugs: []string{"extra_shelves"}}
	res := ResolveVisibility(cm, state)
	assert.False(t, res.IsVisible("fitout"))

	state.Answers["extras"] = model.Answer{Slugs: []string{"extra_shelves", "extra_skylight"}}
	res = ResolveVisibility(cm, state)
	assert.True(t, res.IsVisible("fitout"))
}

func TestResolveVisibilitySinglePassSufficient(t *testing.T) {
	cm := mustCompile(t)
	state := model.NewSelectionState()
	state.Answers["aircon"] = model.Answer{Slug: "aircon_no"}
	state.Answers["fitout"] = model.Answer{Slug: "fitout_basic"}

	first := ResolveVisibility(cm, state)
	require.True(t, first.Changed)

	// Clearing an orphan answer cannot hide anything else, so a second pass
	// over the cleaned state is a no-op.
	second := ResolveVisibility(cm, first.State)
	assert.False(t, second.Changed)
	assert.Equal(t, cm.VisibleKeys(first.Visible), cm.VisibleKeys(second.Visible))
}
