package engine

import (
	"math"

	"containerquote/internal/model"
)

// ComputeTotal sums the base price and the signed deltas of every selected
// option under a visible question. Summation order does not matter; only the
// final total is rounded, never intermediate terms. Deductions may drive the
// total below zero, no floor is applied.
func ComputeTotal(cm *ConfigModel, visible map[string]struct{}, state *model.SelectionState) float64 {
	total := cm.BasePrice()
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
			if !ok {
				continue
			}
			if opt.PriceSign == model.SignDeduction {
				total -= opt.PriceDelta
			} else {
				total += opt.PriceDelta
			}
		}
	}
	return round2(total)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
