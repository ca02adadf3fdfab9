package model

import "time"

// InputKind defines how a question is rendered and answered
type InputKind string

const (
	InputVisual   InputKind = "visual"   // radio cards with option images
	InputDropdown InputKind = "dropdown" // compact single select
	InputCheckbox InputKind = "checkbox" // multi select
)

// Multi reports whether the kind holds a set of selected options
func (k InputKind) Multi() bool {
	return k == InputCheckbox
}

// Valid reports whether the kind is one of the known input kinds
func (k InputKind) Valid() bool {
	switch k {
	case InputVisual, InputDropdown, InputCheckbox:
		return true
	}
	return false
}

// PriceSign defines whether an option delta is added or deducted
type PriceSign string

const (
	SignAddition  PriceSign = "addition"
	SignDeduction PriceSign = "deduction"
)

// OptionRole marks special options
type OptionRole string

const (
	RoleStandard OptionRole = "standard"
	RoleAssembly OptionRole = "assembly" // at most one per question, first wins
)

// ViewAngle is the product image perspective shown on the storefront
type ViewAngle string

const (
	AngleFront    ViewAngle = "front"
	AngleSide     ViewAngle = "side"
	AngleBack     ViewAngle = "back"
	AngleInterior ViewAngle = "interior"
)

// Valid reports whether the angle is one of the known view angles
func (a ViewAngle) Valid() bool {
	switch a {
	case AngleFront, AngleSide, AngleBack, AngleInterior:
		return true
	}
	return false
}

// Conditional gates a question on another question's current answer
type Conditional struct {
	DependsOnQuestionKey string `json:"dependsOnQuestionKey" bson:"dependsOnQuestionKey"`
	RequiredOptionSlug   string `json:"requiredOptionSlug" bson:"requiredOptionSlug"`
}

// Option is one selectable choice within a question. Slug is stable and
// unique within its parent question; behavior never derives from Label.
type Option struct {
	Slug         string     `json:"slug" bson:"slug"`
	Label        string     `json:"label" bson:"label"`
	PriceDelta   float64    `json:"priceDelta" bson:"priceDelta"`
	PriceSign    PriceSign  `json:"priceSign" bson:"priceSign"`
	Role         OptionRole `json:"role,omitempty" bson:"role,omitempty"`
	AffectsImage bool       `json:"affectsImage" bson:"affectsImage"`
}

// Question is one configurable step of a product. Key is stable and unique
// within a configuration.
type Question struct {
	Key           string       `json:"key" bson:"key"`
	Label         string       `json:"label" bson:"label"`
	Kind          InputKind    `json:"inputKind" bson:"inputKind"`
	Required      bool         `json:"required" bson:"required"`
	ShowInSummary bool         `json:"showInSummary" bson:"showInSummary"`
	Conditional   *Conditional `json:"conditional,omitempty" bson:"conditional,omitempty"`
	Options       []Option     `json:"options" bson:"options"`
}

// ImageRule maps a set of option slugs to a product image for one view angle.
// An empty MatchTags set makes the rule the fallback for its angle.
type ImageRule struct {
	MatchTags []string  `json:"matchTags" bson:"matchTags"`
	ViewAngle ViewAngle `json:"viewAngle" bson:"viewAngle"`
	ImageRef  string    `json:"imageRef" bson:"imageRef"`
}

// Configuration is the authored quote setup for one product: its ordered
// questions, image rules, base price and default image.
type Configuration struct {
	ID              string      `json:"id" bson:"_id,omitempty"`
	ProductID       string      `json:"productId" bson:"productId"`
	Title           string      `json:"title" bson:"title"`
	BasePrice       float64     `json:"basePrice" bson:"basePrice"`
	DefaultImageRef string      `json:"defaultImageRef" bson:"defaultImageRef"`
	Questions       []Question  `json:"questions" bson:"questions"`
	ImageRules      []ImageRule `json:"imageRules" bson:"imageRules"`
	CreatedAt       time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt" bson:"updatedAt"`
}
