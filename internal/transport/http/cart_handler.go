package http

import (
	"net/http"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/samber/lo"
)

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetCart(r.Context(), UserID(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, lo.Map(cart.Items, func(item domain.CartItem, _ int) CartItemDTO {
		return CartItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			SpecID:    item.VariantID,
			Quantity:  item.Quantity,
		}
	}))
}

// AddCartItem adds to the quantity when the variant is already in the cart.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req CartItemDTO
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	id, err := h.carts.AddItem(r.Context(), UserID(r.Context()), domain.CartItem{
		ProductID: req.ProductID,
		VariantID: req.SpecID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, IDResponse{ID: id})
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathUUID(r, "itemID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req QuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.carts.UpdateQuantity(r.Context(), UserID(r.Context()), itemID, req.Quantity); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteCartItems(w http.ResponseWriter, r *http.Request) {
	var req IDsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	count, err := h.carts.DeleteItems(r.Context(), UserID(r.Context()), req.IDs)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, CountResponse{Count: count})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	count, err := h.carts.Clear(r.Context(), UserID(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, CountResponse{Count: count})
}

func (h *Handler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.addresses.ListAddresses(r.Context(), UserID(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, lo.Map(addresses, func(a domain.Address, _ int) AddressDTO {
		return toAddressDTO(a)
	}))
}

func (h *Handler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var req AddressDTO
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	address, err := h.addresses.CreateAddress(r.Context(), domain.Address{
		UserID:    UserID(r.Context()),
		Recipient: req.Name,
		Phone:     req.Phone,
		Province:  req.Province,
		City:      req.City,
		District:  req.District,
		Detail:    req.Address,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toAddressDTO(address))
}

func (h *Handler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	addressID, err := pathUUID(r, "addressID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.addresses.SetDefaultAddress(r.Context(), addressID, UserID(r.Context())); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
