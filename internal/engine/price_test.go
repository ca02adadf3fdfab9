package engine

import (
	"testing"

	"containerquote/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalPrice(t *testing.T, cm *ConfigModel, state *model.SelectionState) float64 {
	t.Helper()
	res := ResolveVisibility(cm, state)
	return ComputeTotal(cm, res.Visible, res.State)
}

func TestComputeTotalBasePriceOnly(t *testing.T) {
	cm := mustCompile(t)
	assert.Equal(t, 5000.0, evalPrice(t, cm, model.NewSelectionState()))
}

func TestComputeTotalAdditionsAndDeductions(t *testing.T) {
	cm := mustCompile(t)
	state := model.NewSelectionState()
	state.Answers["size"] = model.Answer{Slug: "size_40"}
	state.Answers["extras"] = model.Answer{Slugs: []string{"extra_shelves", "extra_promo"}}

	// 5000 + 3000 + 120 - 300
	assert.Equal(t, 7820.0, evalPrice(t, cm, state))
}

func TestComputeTotalIgnoresHiddenQuestions(t *testing.T) {
	cm := mustCompile(t)
	state := model.NewSelectionState()
	state.Answers["aircon"] = model.Answer{Slug: "aircon_no"}
	state.Answers["fitout"] = model.Answer{Slug: "fitout_premium"}

	// fitout is hidden while aircon_no is selected, its 450 never counts.
	assert.Equal(t, 5000.0, evalPrice(t, cm, state))
}

func TestComputeTotalCommutative(t *testing.T) {
	cm := mustCompile(t)
	ev := NewEvaluator(cm)

	events := []model.AnswerEvent{
		{QuestionKey: "size", Kind: model.EventSelectSingle, OptionSlug: "size_40"},
		{QuestionKey: "aircon", Kind: model.EventSelectSingle, OptionSlug: "aircon_yes"},
		{QuestionKey: "extras", Kind: model.EventToggleMulti, OptionSlug: "extra_shelves"},
		{QuestionKey: "extras", Kind: model.EventToggleMulti, OptionSlug: "extra_promo"},
	}
	orders := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{1, 3, 0, 2},
		{2, 0, 3, 1},
	}

	want := 0.0
	for i, order := range orders {
		state := model.NewSelectionState()
		var snap *model.Snapshot
		for _, idx := range order {
			snap, state = ev.OnAnswerChanged(state, events[idx])
		}
		if i == 0 {
			want = snap.Total
			// 5000 + 3000 + 850 + 120 - 300
			assert.Equal(t, 8670.0, want)
			continue
		}
		assert.Equal(t, want, snap.Total, "order %v", order)
	}
}

func TestComputeTotalRoundsFinalOnly(t *testing.T) {
	cfg := testConfig()
	cfg.BasePrice = 10.105
	cfg.Questions[0].Options[0].PriceDelta = 0.10
	cfg.Questions[0].Options[1].PriceDelta = 0.205
	cm, err := Compile(cfg)
	require.NoError(t, err)

	state := model.NewSelectionState()
	state.Answers["size"] = model.Answer{Slug: "size_40"}

	// 10.105 + 0.205 = 10.31, rounded once at the end.
	assert.Equal(t, 10.31, evalPrice(t, cm, state))
}

func TestComputeTotalNoFloorAtZero(t *testing.T) {
	cfg := testConfig()
	cfg.BasePrice = 100
	cfg.Questions[3].Options[1].PriceDelta = 250 // promo deduction
	cm, err := Compile(cfg)
	require.NoError(t, err)

	state := model.NewSelectionState()
	state.Answers["extras"] = model.Answer{Slugs: []string{"extra_promo"}}

	assert.Equal(t, -150.0, evalPrice(t, cm, state))
}

func TestComputeTotalSkipsStaleSlugs(t *testing.T) {
	cm := mustCompile(t)
	state := model.NewSelectionState()
	state.Answers["extras"] = model.Answer{Slugs: []string{"extra_shelves", "extra_retired"}}

	// A slug edited out of the catalog contributes zero, never an error.
	assert.Equal(t, 5120.0, evalPrice(t, cm, state))
}
