package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
	"github.com/wadjakorntonsri/go-catalog/pkg/core/slug"
	"github.com/wadjakorntonsri/go-catalog/pkg/ports"
)

type CollectionHandler struct {
	service   ports.CollectionService
	validator *Validator
}

func NewCollectionHandler(service ports.CollectionService, v *Validator) *CollectionHandler {
	return &CollectionHandler{service: service, validator: v}
}

// ListCollections returns every collection, or with ?slugs=a,b only the
// matching ones (404 when none match).
func (h *CollectionHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query(); q.Has("slugs") {
		collections, err := h.service.ListBySlugs(r.Context(), slug.Split(q.Get("slugs")))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, collections)
		return
	}

	collections, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, collections)
}

// ListWithProducts returns the collections named by ?slugs=a,b with their products.
func (h *CollectionHandler) ListWithProducts(w http.ResponseWriter, r *http.Request) {
	collections, err := h.service.ListWithProductsBySlugs(r.Context(), slug.Split(r.URL.Query().Get("slugs")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, collections)
}

func (h *CollectionHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	collection, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, collection)
}

func (h *CollectionHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var req domain.CollectionRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		writeError(w, r, err)
		return
	}
	collection, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, collection)
}

func (h *CollectionHandler) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req domain.CollectionRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		writeError(w, r, err)
		return
	}
	collection, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, collection)
}

func (h *CollectionHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
