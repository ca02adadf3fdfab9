package handler

import (
	"containerquote/internal/engine"
	"containerquote/internal/model"
	"containerquote/internal/service"
	"containerquote/internal/transport/rest/middleware"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

// QuoteHandler handles storefront quote-session endpoints
type QuoteHandler struct {
	quoteSvc *service.QuoteService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteSvc *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteSvc: quoteSvc}
}

// AnswerRequest is the request body for an answer-change event
type AnswerRequest struct {
	QuestionKey string `json:"questionKey"`
	Kind        string `json:"kind"`
	OptionSlug  string `json:"optionSlug,omitempty"`
}

// ViewAngleRequest is the request body for a view-angle change
type ViewAngleRequest struct {
	ViewAngle string `json:"viewAngle"`
}

// StartSession handles POST /v1/quote/{productId}/session
func (h *QuoteHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["productId"]

	result, err := h.quoteSvc.StartSession(r.Context(), productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "no quote configuration for this product")
			return
		}
		if errors.Is(err, engine.ErrMalformedConfig) {
			// Distinguishable from a valid-but-empty configuration: the
			// storefront renders its "quote unavailable" state.
			writeError(w, http.StatusConflict, "quote unavailable")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// Answer handles POST /v1/quote/session/answer
func (h *QuoteHandler) Answer(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snapshot, err := h.quoteSvc.ApplyAnswer(r.Context(), sessionID, model.AnswerEvent{
		QuestionKey: req.QuestionKey,
		Kind:        model.EventKind(req.Kind),
		OptionSlug:  req.OptionSlug,
	})
	if err != nil {
		writeQuoteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

// ViewAngle handles POST /v1/quote/session/view-angle
func (h *QuoteHandler) ViewAngle(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	var req ViewAngleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snapshot, err := h.quoteSvc.SetViewAngle(r.Context(), sessionID, model.ViewAngle(req.ViewAngle))
	if err != nil {
		writeQuoteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

// Snapshot handles GET /v1/quote/session/snapshot
func (h *QuoteHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	snapshot, err := h.quoteSvc.GetSnapshot(r.Context(), sessionID)
	if err != nil {
		writeQuoteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

// Submit handles POST /v1/quote/session/submit
func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	var contact model.ContactDetails
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if contact.Name == "" || contact.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	sub, err := h.quoteSvc.Submit(r.Context(), sessionID, contact)
	if err != nil {
		writeQuoteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

func writeQuoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusGone, "session expired")
	case errors.Is(err, service.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "configuration no longer exists")
	case errors.Is(err, engine.ErrMalformedConfig):
		writeError(w, http.StatusConflict, "quote unavailable")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
