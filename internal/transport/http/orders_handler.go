package http

import (
	"net/http"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/samber/lo"
)

// Checkout places one order per requested line.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	orders, err := h.checkout.Checkout(r.Context(), domain.CheckoutRequest{
		UserID:    UserID(r.Context()),
		AddressID: req.AddressID,
		Lines: lo.Map(req.Items, func(item CheckoutItemRequest, _ int) domain.CheckoutLine {
			return domain.CheckoutLine{
				ProductID: item.ProductID,
				VariantID: item.SpecID,
				Quantity:  item.Quantity,
				Remark:    item.Remark,
			}
		}),
	})
	if err != nil {
		h.respondFailure(w, r, err, orders)
		return
	}

	h.respondJSON(w, http.StatusCreated, toOrderDTOs(orders))
}

func (h *Handler) CheckoutCart(w http.ResponseWriter, r *http.Request) {
	var req CartCheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	orders, err := h.checkout.CheckoutCart(r.Context(), UserID(r.Context()), req.AddressID, req.CartItemIDs, req.Remarks)
	if err != nil {
		h.respondFailure(w, r, err, orders)
		return
	}

	h.respondJSON(w, http.StatusCreated, toOrderDTOs(orders))
}

// ListOrders serves "my orders", optionally filtered by a buyer status label.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var status *domain.BuyerStatus

	if raw := r.URL.Query().Get("status"); raw != "" {
		s, err := domain.ToBuyerStatus(raw)
		if err != nil {
			h.handleError(w, r, domain.InvalidInput("status", "is not valid"))
			return
		}
		status = &s
	}

	orders, err := h.lifecycle.ListOrders(r.Context(), UserID(r.Context()), status)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toOrderDTOs(orders))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "orderID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	order, err := h.lifecycle.GetUserOrder(r.Context(), orderID, UserID(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toOrderDTO(order, 0))
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "orderID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	order, err := h.lifecycle.Cancel(r.Context(), orderID, UserID(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toOrderDTO(order, 0))
}
