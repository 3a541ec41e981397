package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-rentify/internal/model"
)

type propertyService interface {
	List(ctx context.Context) ([]model.Property, error)
	ListBySeller(ctx context.Context, sellerID string) ([]model.Property, error)
	Get(ctx context.Context, sellerID string, propertyID string) (model.Property, error)
	Create(ctx context.Context, sellerID string, req model.PropertyRequest) (model.Property, error)
	Update(ctx context.Context, sellerID string, propertyID string, req model.PropertyRequest) (model.Property, error)
	Delete(ctx context.Context, sellerID string, propertyID string) error
}

type PropertyHandler struct {
	responder
	service propertyService
}

func NewPropertyHandler(service propertyService, exposeDetails bool) *PropertyHandler {
	return &PropertyHandler{responder: responder{exposeDetails: exposeDetails}, service: service}
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.PropertyList{Items: items})
}

func (h *PropertyHandler) ListBySeller(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListBySeller(r.Context(), chi.URLParam(r, "sellerId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.PropertyList{Items: items})
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	property, err := h.service.Get(r.Context(), chi.URLParam(r, "sellerId"), chi.URLParam(r, "propertyId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, property)
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.PropertyRequest
	if err := decodeJSON(r, &payload); err != nil {
		h.writeError(w, err)
		return
	}

	property, err := h.service.Create(r.Context(), chi.URLParam(r, "sellerId"), payload)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, property)
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload model.PropertyRequest
	if err := decodeJSON(r, &payload); err != nil {
		h.writeError(w, err)
		return
	}

	property, err := h.service.Update(r.Context(), chi.URLParam(r, "sellerId"), chi.URLParam(r, "propertyId"), payload)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, property)
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "sellerId"), chi.URLParam(r, "propertyId")); err != nil {
		h.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.MessageResponse{Message: "Property deleted"})
}
