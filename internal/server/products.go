package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/agritrace/supplytrace/internal/events"
	"github.com/agritrace/supplytrace/internal/idgen"
	"github.com/agritrace/supplytrace/internal/model"
	"github.com/agritrace/supplytrace/internal/store"
)

// createProductInput holds the request body for registering a product.
type createProductInput struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	BatchID      string `json:"batchId"`
	HarvestDate  string `json:"harvestDate"`
	OriginFarmID string `json:"originFarmId"`
	Destination  string `json:"destination"`
}

// handleCreateProduct handles POST /v1/products.
func (s *TrackerServer) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var in createProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	now := time.Now().UTC()
	id, err := idgen.NewProductID()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate ID")
		return
	}

	product := &model.Product{
		ID:              id,
		Name:            in.Name,
		Type:            in.Type,
		BatchID:         in.BatchID,
		HarvestDate:     in.HarvestDate,
		OriginFarmID:    in.OriginFarmID,
		Destination:     in.Destination,
		TrackingHistory: []model.TrackingStage{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := model.ValidateProduct(product); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Denormalize the farm name when the farm is known.
	farm, err := s.store.GetFarm(r.Context(), in.OriginFarmID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusInternalServerError, "failed to resolve origin farm")
			return
		}
		writeError(w, http.StatusBadRequest, "origin farm not found")
		return
	}
	product.OriginFarmName = farm.Name

	if err := s.store.CreateProduct(r.Context(), product); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	s.emitProduct(r.Context(), events.TopicProductCreated, events.ProductCreated{Product: product}, product)

	writeJSON(w, http.StatusCreated, product)
}

// productFilterFromQuery builds a ProductFilter from list/search query params.
func productFilterFromQuery(r *http.Request) model.ProductFilter {
	q := r.URL.Query()
	filter := model.ProductFilter{
		Name:         q.Get("name"),
		Type:         q.Get("type"),
		BatchID:      q.Get("batch_id"),
		OriginFarmID: q.Get("origin_farm_id"),
		Status:       q.Get("status"),
		Sort:         q.Get("sort"),
		SortDesc:     q.Get("order") == "desc",
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}
	return filter
}

// handleListProducts handles GET /v1/products.
func (s *TrackerServer) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, total, err := s.store.ListProducts(r.Context(), productFilterFromQuery(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	// Ensure products is never null in JSON output.
	if products == nil {
		products = []*model.Product{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"products": products,
		"total":    total,
	})
}

// handleSearchProducts handles GET /v1/products/search. It shares the list
// filter but requires at least one criterion.
func (s *TrackerServer) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	filter := productFilterFromQuery(r)
	if filter.Name == "" && filter.Type == "" && filter.BatchID == "" &&
		filter.OriginFarmID == "" && filter.Status == "" {
		writeError(w, http.StatusBadRequest, "at least one search criterion is required")
		return
	}

	products, total, err := s.store.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to search products")
		return
	}
	if products == nil {
		products = []*model.Product{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"products": products,
		"total":    total,
	})
}

// handleProductStats handles GET /v1/products/stats (dashboard aggregates).
func (s *TrackerServer) handleProductStats(w http.ResponseWriter, r *http.Request) {
	products, total, err := s.store.ListProducts(r.Context(), model.ProductFilter{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	byStatus := make(map[string]int)
	byType := make(map[string]int)
	for _, p := range products {
		status := p.Status
		if status == "" {
			status = "Registered"
		}
		byStatus[status]++
		byType[p.Type]++
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":    total,
		"byStatus": byStatus,
		"byType":   byType,
	})
}

// handleGetProduct handles GET /v1/products/{id}.
func (s *TrackerServer) handleGetProduct(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, product)
}

// handleReplaceProduct handles PUT /v1/products/{id}. The tracking history
// is owned by the tracking endpoints and survives a full replace.
func (s *TrackerServer) handleReplaceProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in createProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	existing, err := s.store.GetProduct(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	updated := existing.Clone()
	updated.Name = in.Name
	updated.Type = in.Type
	updated.BatchID = in.BatchID
	updated.HarvestDate = in.HarvestDate
	updated.Destination = in.Destination
	if in.OriginFarmID != "" && in.OriginFarmID != existing.OriginFarmID {
		farm, err := s.store.GetFarm(r.Context(), in.OriginFarmID)
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "origin farm not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to resolve origin farm")
			return
		}
		updated.OriginFarmID = in.OriginFarmID
		updated.OriginFarmName = farm.Name
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := model.ValidateProduct(updated); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.UpdateProduct(r.Context(), updated); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	s.emitProduct(r.Context(), events.TopicProductUpdated, events.ProductUpdated{Product: updated}, updated)

	writeJSON(w, http.StatusOK, updated)
}

// updateProductInput holds the PATCH body. Nil pointers mean "leave as is".
type updateProductInput struct {
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	BatchID     *string `json:"batchId"`
	HarvestDate *string `json:"harvestDate"`
	Destination *string `json:"destination"`
}

// handleUpdateProduct handles PATCH /v1/products/{id}.
func (s *TrackerServer) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in updateProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	existing, err := s.store.GetProduct(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	updated := existing.Clone()
	if in.Name != nil {
		updated.Name = *in.Name
	}
	if in.Type != nil {
		updated.Type = *in.Type
	}
	if in.BatchID != nil {
		updated.BatchID = *in.BatchID
	}
	if in.HarvestDate != nil {
		updated.HarvestDate = *in.HarvestDate
	}
	if in.Destination != nil {
		updated.Destination = *in.Destination
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := model.ValidateProduct(updated); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.UpdateProduct(r.Context(), updated); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	s.emitProduct(r.Context(), events.TopicProductUpdated, events.ProductUpdated{Product: updated}, updated)

	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteProduct handles DELETE /v1/products/{id}.
func (s *TrackerServer) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.store.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	s.emit(r.Context(), events.TopicProductDeleted, id, events.ProductDeleted{ProductID: id})

	w.WriteHeader(http.StatusNoContent)
}

// updateStatusInput holds the POST /v1/products/{id}/status body.
type updateStatusInput struct {
	Status   string `json:"status"`
	Location string `json:"location"`
}

// handleUpdateStatus handles POST /v1/products/{id}/status. Unlike a
// tracking stage append, this sets the status directly and emits a
// StatusChange event for the filtered status subscriptions.
func (s *TrackerServer) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in updateStatusInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	existing, err := s.store.GetProduct(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	oldStatus := existing.Status
	updated := existing.Clone()
	updated.Status = in.Status
	if in.Location != "" {
		updated.CurrentLocation = in.Location
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateProduct(r.Context(), updated); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	s.emit(r.Context(), events.TopicProductStatusChanged, updated.ID, events.StatusChange{
		ProductID: updated.ID,
		OldStatus: oldStatus,
		NewStatus: updated.Status,
		Location:  updated.CurrentLocation,
		Timestamp: updated.UpdatedAt.Format(time.RFC3339),
	})
	s.emitProduct(r.Context(), events.TopicProductUpdated, events.ProductUpdated{Product: updated}, updated)

	writeJSON(w, http.StatusOK, updated)
}
