package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/agritrace/supplytrace/internal/events"
	"github.com/agritrace/supplytrace/internal/model"
	"github.com/agritrace/supplytrace/internal/store"
	"github.com/agritrace/supplytrace/internal/tracking"
)

// addStageInput holds the POST /v1/products/{id}/tracking body.
type addStageInput struct {
	Stage     string `json:"stage"`
	Location  string `json:"location"`
	Handler   string `json:"handler"`
	Timestamp string `json:"timestamp"` // optional RFC 3339
	Notes     string `json:"notes"`
}

// handleAddTrackingStage handles POST /v1/products/{id}/tracking.
// The caller's role arrives pre-verified in the X-Actor-Role header; the
// state machine decides whether that role may append the stage.
func (s *TrackerServer) handleAddTrackingStage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in addStageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ts, err := tracking.ParseTimestamp(in.Timestamp)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := s.store.GetProduct(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	stage := model.TrackingStage{
		Stage:     in.Stage,
		Location:  in.Location,
		Handler:   in.Handler,
		Timestamp: ts,
		Notes:     in.Notes,
	}

	oldStatus := product.Status
	updated, err := tracking.AddStage(product, stage, actorRole(r))
	if err != nil {
		var ve *tracking.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}
		var ae *tracking.AuthorizationError
		if errors.As(err, &ae) {
			writeError(w, http.StatusForbidden, ae.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := s.store.UpdateProduct(r.Context(), updated); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save product")
		return
	}

	s.emitProduct(r.Context(), events.TopicProductUpdated, events.ProductUpdated{Product: updated}, updated)
	s.emit(r.Context(), events.TopicProductStatusChanged, updated.ID, events.StatusChange{
		ProductID: updated.ID,
		OldStatus: oldStatus,
		NewStatus: updated.Status,
		Location:  updated.CurrentLocation,
		Timestamp: updated.LastStage().Timestamp.Format(time.RFC3339),
	})

	writeJSON(w, http.StatusOK, updated)
}

// handleGetTrackingHistory handles GET /v1/products/{id}/tracking.
func (s *TrackerServer) handleGetTrackingHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	product, err := s.store.GetProduct(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	history := product.TrackingHistory
	if history == nil {
		history = []model.TrackingStage{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"productId": product.ID,
		"history":   history,
	})
}
