package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
	"github.com/wadjakorntonsri/go-catalog/pkg/core/slug"
	"github.com/wadjakorntonsri/go-catalog/pkg/ports"
)

type CategoryHandler struct {
	service   ports.CategoryService
	validator *Validator
}

func NewCategoryHandler(service ports.CategoryService, v *Validator) *CategoryHandler {
	return &CategoryHandler{service: service, validator: v}
}

// List returns every category, or with ?slugs=a,b the matching categories
// with their products nested.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query(); q.Has("slugs") {
		categories, err := h.service.ListWithProductsBySlugs(r.Context(), slug.Split(q.Get("slugs")))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, categories)
		return
	}

	categories, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	category, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CategoryRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		writeError(w, r, err)
		return
	}
	category, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req domain.CategoryRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		writeError(w, r, err)
		return
	}
	category, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
