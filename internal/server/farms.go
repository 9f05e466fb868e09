package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/agritrace/supplytrace/internal/events"
	"github.com/agritrace/supplytrace/internal/idgen"
	"github.com/agritrace/supplytrace/internal/model"
	"github.com/agritrace/supplytrace/internal/store"
)

// farmInput holds the create/update request body for a farm.
type farmInput struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Owner       string `json:"owner"`
	ContactInfo string `json:"contactInfo"`
	Description string `json:"description"`
}

// handleCreateFarm handles POST /v1/farms.
func (s *TrackerServer) handleCreateFarm(w http.ResponseWriter, r *http.Request) {
	var in farmInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	now := time.Now().UTC()
	id, err := idgen.NewFarmID()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate ID")
		return
	}

	farm := &model.Farm{
		ID:          id,
		Name:        in.Name,
		Location:    in.Location,
		Owner:       in.Owner,
		ContactInfo: in.ContactInfo,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := model.ValidateFarm(farm); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.CreateFarm(r.Context(), farm); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create farm")
		return
	}

	s.emit(r.Context(), events.TopicFarmCreated, "", events.FarmCreated{Farm: farm})

	writeJSON(w, http.StatusCreated, farm)
}

// handleListFarms handles GET /v1/farms.
func (s *TrackerServer) handleListFarms(w http.ResponseWriter, r *http.Request) {
	farms, err := s.store.ListFarms(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list farms")
		return
	}
	if farms == nil {
		farms = []*model.Farm{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"farms": farms})
}

// handleGetFarm handles GET /v1/farms/{id}.
func (s *TrackerServer) handleGetFarm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	farm, err := s.store.GetFarm(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "farm not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get farm")
		return
	}

	writeJSON(w, http.StatusOK, farm)
}

// handleUpdateFarm handles PUT /v1/farms/{id}.
func (s *TrackerServer) handleUpdateFarm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in farmInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	existing, err := s.store.GetFarm(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "farm not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get farm")
		return
	}

	farm := &model.Farm{
		ID:          existing.ID,
		Name:        in.Name,
		Location:    in.Location,
		Owner:       in.Owner,
		ContactInfo: in.ContactInfo,
		Description: in.Description,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := model.ValidateFarm(farm); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.UpdateFarm(r.Context(), farm); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update farm")
		return
	}

	s.emit(r.Context(), events.TopicFarmUpdated, "", events.FarmUpdated{Farm: farm})

	writeJSON(w, http.StatusOK, farm)
}

// handleDeleteFarm handles DELETE /v1/farms/{id}.
func (s *TrackerServer) handleDeleteFarm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.store.DeleteFarm(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "farm not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete farm")
		return
	}

	s.emit(r.Context(), events.TopicFarmDeleted, "", events.FarmDeleted{FarmID: id})

	w.WriteHeader(http.StatusNoContent)
}
