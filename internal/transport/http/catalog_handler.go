package http

import (
	"net/http"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/samber/lo"
)

// CreateProduct prices the product and its specs in the store currency.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductDTO
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), domain.Product{
		Title:          req.Title,
		VendorID:       req.VendorID,
		VendorName:     req.VendorName,
		Logistics:      req.Logistics,
		LogisticsPrice: domain.Money{Amount: req.LogiPrice, Currency: h.currency},
		MinQuantity:    req.MinQuantity,
		IsActive:       req.IsActive,
		Variants: lo.Map(req.Specs, func(spec SpecDTO, _ int) domain.Variant {
			return domain.Variant{
				Name:  spec.Name,
				Value: spec.Value,
				Price: domain.Money{Amount: spec.Price, Currency: h.currency},
				Stock: spec.Stock,
				Image: spec.Image,
			}
		}),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toProductDTO(product))
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathUUID(r, "productID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toProductDTO(product))
}

// DeleteProduct hard-deletes unless ?mode=soft is given.
// A hard delete of a product still referenced by orders or carts is rejected.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathUUID(r, "productID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if r.URL.Query().Get("mode") == "soft" {
		err = h.catalog.SoftDeleteProduct(r.Context(), productID)
	} else {
		err = h.catalog.DeleteProduct(r.Context(), productID)
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SetSpecStock(w http.ResponseWriter, r *http.Request) {
	specID, err := pathUUID(r, "specID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req StockRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.catalog.SetVariantStock(r.Context(), specID, req.Stock); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetSpecPrice changes the current price. Placed orders keep their snapshot.
func (h *Handler) SetSpecPrice(w http.ResponseWriter, r *http.Request) {
	specID, err := pathUUID(r, "specID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req PriceRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.catalog.UpdateVariantPrice(r.Context(), specID, domain.Money{Amount: req.Price, Currency: h.currency}); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
