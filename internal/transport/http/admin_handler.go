package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/samber/lo"
)

func (h *Handler) AdminListOrders(w http.ResponseWriter, r *http.Request) {
	filter, err := parseOrderFilter(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	orders, err := h.lifecycle.AdminListOrders(r.Context(), filter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toOrderDTOs(orders))
}

// parseOrderFilter reads repeated status and userId params plus an RFC 3339 from/to window.
func parseOrderFilter(r *http.Request) (domain.OrderFilter, error) {
	var filter domain.OrderFilter
	query := r.URL.Query()

	for _, raw := range query["status"] {
		status, err := domain.ToOrderStatus(raw)
		if err != nil {
			return filter, domain.InvalidInput("status", "is not valid")
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	filter.UserIDs = query["userId"]
	filter.Ascending = query.Get("sort") == "asc"

	from, err := parseTime(query.Get("from"), "from")
	if err != nil {
		return filter, err
	}
	to, err := parseTime(query.Get("to"), "to")
	if err != nil {
		return filter, err
	}

	if from != nil || to != nil {
		window := domain.TimeRange{After: from, Before: to}
		if err := window.Validate(); err != nil {
			return filter, domain.InvalidInput("to", "is before from")
		}
		filter.CreatedAt = &window
	}

	return filter, nil
}

func parseTime(raw, field string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, domain.InvalidInput(field, "is not an RFC 3339 time")
	}

	return &t, nil
}

func (h *Handler) AdminGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "orderID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	order, err := h.lifecycle.GetOrder(r.Context(), orderID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toOrderDTO(order, 0))
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "orderID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req StatusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	order, err := h.lifecycle.UpdateStatus(r.Context(), domain.StatusUpdate{
		OrderID:        orderID,
		Status:         domain.OrderStatus(req.Status),
		TrackingNumber: req.TrackingNumber,
		ShippingInfo:   req.ShippingInfo,
		RefundInfo:     req.RefundInfo,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toOrderDTO(order, 0))
}

func (h *Handler) SoftDeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "orderID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.lifecycle.SoftDelete(r.Context(), orderID); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HardDeleteOrder removes an order with its items. Soft delete is the default.
func (h *Handler) HardDeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "orderID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.lifecycle.HardDelete(r.Context(), orderID); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SoftDeleteOrders(w http.ResponseWriter, r *http.Request) {
	var req IDsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	count, err := h.lifecycle.SoftDeleteMany(r.Context(), req.IDs)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, CountResponse{Count: count})
}

func (h *Handler) OrderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.lifecycle.OrderStats(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	tx, err := h.lifecycle.TransactionStats(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toOrderStatsResponse(stats, tx))
}

func (h *Handler) VendorReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var reportQuery domain.VendorReportQuery
	if vendorID := query.Get("vendorId"); vendorID != "" {
		reportQuery.VendorID = &vendorID
	}

	if raw := query.Get("year"); raw != "" {
		year, err := queryInt(raw, "year")
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		reportQuery.Year = &year
	}

	var err error
	if reportQuery.Page, err = queryInt(query.Get("page"), "page"); err != nil {
		h.handleError(w, r, err)
		return
	}
	if reportQuery.PageSize, err = queryInt(query.Get("pageSize"), "pageSize"); err != nil {
		h.handleError(w, r, err)
		return
	}

	page, err := h.reports.VendorReport(r.Context(), reportQuery)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toVendorReportResponse(page))
}

// queryInt returns 0 for an absent value so paging defaults apply.
func queryInt(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.InvalidInput(field, "is not a number")
	}

	return n, nil
}

func (h *Handler) VendorList(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.reports.VendorList(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, lo.Map(vendors, func(v domain.Vendor, _ int) VendorRefDTO {
		return VendorRefDTO{ID: v.ID, Name: v.Name}
	}))
}

func (h *Handler) StockAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.reports.StockAlerts(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, lo.Map(alerts, toStockAlertDTO))
}
