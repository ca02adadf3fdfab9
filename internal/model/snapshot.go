package model

// SummaryPill is one entry of the storefront summary strip: the current
// selection of a showInSummary question, or a placeholder when the question
// is unanswered or hidden.
type SummaryPill struct {
	QuestionKey   string `json:"questionKey"`
	QuestionLabel string `json:"questionLabel"`
	OptionLabel   string `json:"optionLabel,omitempty"`
	Answered      bool   `json:"answered"`
}

// Snapshot is the combined result of one evaluation cycle. Price, image and
// visibility always reflect the same cleaned answers.
type Snapshot struct {
	VisibleQuestionKeys []string          `json:"visibleQuestionKeys"`
	Total               float64           `json:"total"`
	ImageRef            string            `json:"imageRef"`
	ViewAngle           ViewAngle         `json:"viewAngle"`
	Answers             map[string]Answer `json:"answers"`
	Summary             []SummaryPill     `json:"summary"`
}
