package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/itemlab/itemlab/internal/db"
	"github.com/itemlab/itemlab/internal/events"
	"github.com/itemlab/itemlab/internal/metrics"
	"github.com/itemlab/itemlab/internal/repo"
	"go.uber.org/zap"
)

// itemRequest is the full item shape used by create and replace
type itemRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// itemPatchRequest carries only the fields the caller wants changed
type itemPatchRequest struct {
	Name     *string `json:"name" validate:"omitnil,min=1"`
	Quantity *int    `json:"quantity" validate:"omitnil,gte=0"`
}

// itemID extracts and parses the {id} path segment
func itemID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, errors.New("item id must be a positive integer")
	}
	return uint(id), nil
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := checkStruct(req); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	item := &db.Item{Name: req.Name, Quantity: req.Quantity}
	if err := s.items.Create(r.Context(), item); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	s.refreshItemsGauge(r)
	s.publishEvent(events.EventTypeItemCreated, map[string]interface{}{
		"id":       item.ID,
		"name":     item.Name,
		"quantity": item.Quantity,
	})

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.items.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []*db.Item{}
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := s.items.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get item")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := checkStruct(req); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	item, err := s.items.Replace(r.Context(), id, &db.Item{Name: req.Name, Quantity: req.Quantity})
	if err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	s.publishEvent(events.EventTypeItemUpdated, map[string]interface{}{
		"id":       item.ID,
		"name":     item.Name,
		"quantity": item.Quantity,
	})

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handlePatchItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req itemPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := checkStruct(req); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}

	item, err := s.items.Patch(r.Context(), id, updates)
	if err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to patch item")
		return
	}

	s.publishEvent(events.EventTypeItemUpdated, map[string]interface{}{
		"id":       item.ID,
		"name":     item.Name,
		"quantity": item.Quantity,
	})

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.items.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	s.refreshItemsGauge(r)
	s.publishEvent(events.EventTypeItemDeleted, map[string]interface{}{"id": id})

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) refreshItemsGauge(r *http.Request) {
	total, err := s.items.Count(r.Context())
	if err != nil {
		s.log.Warn("Failed to refresh items gauge", zap.Error(err))
		return
	}
	metrics.ItemsInStore.Set(float64(total))
}
