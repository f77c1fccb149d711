package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
	"github.com/wadjakorntonsri/go-catalog/pkg/ports"
)

// OrderHandler serves orders and their lines
type OrderHandler struct {
	orders    ports.OrderService
	lines     ports.OrderProductService
	validator *Validator
}

func NewOrderHandler(orders ports.OrderService, lines ports.OrderProductService, v *Validator) *OrderHandler {
	return &OrderHandler{orders: orders, lines: lines, validator: v}
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.OrderRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.orders.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req domain.OrderRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.orders.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.orders.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Order lines ---

func (h *OrderHandler) ListLines(w http.ResponseWriter, r *http.Request) {
	lines, err := h.lines.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

func (h *OrderHandler) GetLine(w http.ResponseWriter, r *http.Request) {
	orderID, productID, err := lineKey(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	line, err := h.lines.Get(r.Context(), orderID, productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, line)
}

func (h *OrderHandler) CreateLine(w http.ResponseWriter, r *http.Request) {
	var req domain.OrderProductRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		writeError(w, r, err)
		return
	}
	line, err := h.lines.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, line)
}

func (h *OrderHandler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	orderID, productID, err := lineKey(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	// The key comes from the path; a body may omit it
	req := domain.OrderProductRequest{OrderID: orderID, ProductID: productID}
	if err := decodeBody(r, h.validator, &req); err != nil {
		writeError(w, r, err)
		return
	}
	line, err := h.lines.Update(r.Context(), orderID, productID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, line)
}

func (h *OrderHandler) DeleteLine(w http.ResponseWriter, r *http.Request) {
	orderID, productID, err := lineKey(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.lines.Delete(r.Context(), orderID, productID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func lineKey(r *http.Request) (int64, int64, error) {
	orderID, err := pathID(r, "orderID")
	if err != nil {
		return 0, 0, err
	}
	productID, err := pathID(r, "productID")
	if err != nil {
		return 0, 0, err
	}
	return orderID, productID, nil
}
