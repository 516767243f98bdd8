package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

func NewRouter(h *Handler, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.RequireUser)

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", h.Checkout)
				r.Post("/from-cart", h.CheckoutCart)
				r.Get("/", h.ListOrders)
				r.Get("/{orderID}", h.GetOrder)
				r.Post("/{orderID}/cancel", h.CancelOrder)
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.GetCart)
				r.Delete("/", h.ClearCart)
				r.Post("/items", h.AddCartItem)
				r.Patch("/items/{itemID}", h.UpdateCartItem)
				r.Post("/items/delete", h.DeleteCartItems)
			})

			r.Route("/addresses", func(r chi.Router) {
				r.Get("/", h.ListAddresses)
				r.Post("/", h.CreateAddress)
				r.Put("/{addressID}/default", h.SetDefaultAddress)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.RequireAdmin)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.AdminListOrders)
				r.Get("/stats", h.OrderStats)
				r.Post("/delete", h.SoftDeleteOrders)
				r.Get("/{orderID}", h.AdminGetOrder)
				r.Patch("/{orderID}/status", h.UpdateOrderStatus)
				r.Delete("/{orderID}", h.SoftDeleteOrder)
				r.Delete("/{orderID}/purge", h.HardDeleteOrder)
			})

			r.Get("/vendors", h.VendorList)
			r.Get("/vendors/report", h.VendorReport)
			r.Get("/stock-alerts", h.StockAlerts)

			r.Route("/products", func(r chi.Router) {
				r.Post("/", h.CreateProduct)
				r.Get("/{productID}", h.GetProduct)
				r.Delete("/{productID}", h.DeleteProduct)
				r.Put("/{productID}/specs/{specID}/stock", h.SetSpecStock)
				r.Put("/{productID}/specs/{specID}/price", h.SetSpecPrice)
			})
		})
	})

	return r
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, domain.InvalidInput(param, "is not a valid id")
	}
	return id, nil
}
