package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stocklight/inventory-backend/internal/http/response"
	"github.com/stocklight/inventory-backend/internal/observability"
	"github.com/stocklight/inventory-backend/internal/repository"
	"github.com/stocklight/inventory-backend/internal/service"
)

type ProductHandler struct {
	svc service.ProductService
}

func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string   `json:"name"`
		Quantity *int     `json:"quantity"`
		Price    *float64 `json:"price"`
		Category *string  `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	created, err := h.svc.Create(r.Context(), service.CreateProductInput{
		Name:     body.Name,
		Quantity: body.Quantity,
		Price:    body.Price,
		Category: body.Category,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductFieldsRequired),
			errors.Is(err, service.ErrProductInvalidPrice),
			errors.Is(err, service.ErrProductInvalidQuantity):
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		default:
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to create product", nil)
		}
		return
	}

	observability.Audit(r, "product.create", "product_id", created.ID, "name", created.Name)
	response.JSON(w, r, http.StatusCreated, created)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.List(r.Context(), parseListQuery(r))
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to list products", nil)
		return
	}

	response.JSON(w, r, http.StatusOK, map[string]any{
		"products": res.Items,
		"pagination": paginationMeta{
			CurrentPage:  res.Page,
			TotalPages:   res.TotalPages,
			TotalItems:   res.Total,
			ItemsPerPage: res.Limit,
		},
	})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}
	var body struct {
		Name     *string  `json:"name"`
		Quantity *int     `json:"quantity"`
		Price    *float64 `json:"price"`
		Category *string  `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	err = h.svc.Update(r.Context(), productID, service.UpdateProductInput{
		Name:     body.Name,
		Quantity: body.Quantity,
		Price:    body.Price,
		Category: body.Category,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
		case errors.Is(err, service.ErrProductInvalidName),
			errors.Is(err, service.ErrProductInvalidPrice),
			errors.Is(err, service.ErrProductInvalidQuantity):
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		default:
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to update product", nil)
		}
		return
	}

	observability.Audit(r, "product.update", "product_id", productID)
	response.JSON(w, r, http.StatusOK, map[string]any{"id": productID})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}

	if err := h.svc.DeleteByID(r.Context(), productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to delete product", nil)
		return
	}

	observability.Audit(r, "product.delete", "product_id", productID)
	response.JSON(w, r, http.StatusOK, map[string]any{"deleted": true})
}
