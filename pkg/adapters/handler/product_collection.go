package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
	"github.com/wadjakorntonsri/go-catalog/pkg/ports"
)

type ProductCollectionHandler struct {
	service   ports.ProductCollectionService
	validator *Validator
}

func NewProductCollectionHandler(service ports.ProductCollectionService, v *Validator) *ProductCollectionHandler {
	return &ProductCollectionHandler{service: service, validator: v}
}

func (h *ProductCollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}

func (h *ProductCollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.ProductCollectionRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		writeError(w, r, err)
		return
	}
	link, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

func (h *ProductCollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	collectionID, err := pathID(r, "collectionID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), productID, collectionID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
