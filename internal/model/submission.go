package model

import "time"

// ContactDetails are the contact/shipping fields filled at finalization.
// Field validation happens at the transport layer, not in the engine.
type ContactDetails struct {
	Name     string `json:"name" bson:"name"`
	Email    string `json:"email" bson:"email"`
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`
	Address  string `json:"address,omitempty" bson:"address,omitempty"`
	Postcode string `json:"postcode,omitempty" bson:"postcode,omitempty"`
	Message  string `json:"message,omitempty" bson:"message,omitempty"`
}

// QuoteSubmission is the finalized quote handed over by a customer. Answers
// and Total are the last snapshot's cleaned answers and total, verbatim.
type QuoteSubmission struct {
	ID          string            `json:"id" bson:"_id,omitempty"`
	SessionID   string            `json:"sessionId" bson:"sessionId"`
	ProductID   string            `json:"productId" bson:"productId"`
	ConfigID    string            `json:"configId" bson:"configId"`
	Answers     map[string]Answer `json:"answers" bson:"answers"`
	Total       float64           `json:"total" bson:"total"`
	Contact     ContactDetails    `json:"contact" bson:"contact"`
	SubmittedAt time.Time         `json:"submittedAt" bson:"submittedAt"`
}
