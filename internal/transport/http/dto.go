package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	// Line is the zero-based checkout line that failed.
	Line *int `json:"line,omitempty"`
	// Orders are the orders committed before a per-line checkout failed.
	Orders []OrderDTO `json:"orders,omitempty"`
}

type AddressDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Province  string    `json:"province"`
	City      string    `json:"city"`
	District  string    `json:"district"`
	Address   string    `json:"address"`
	IsDefault bool      `json:"isDefault"`
}

type OrderItemDTO struct {
	ID           uuid.UUID  `json:"id"`
	ProductID    uuid.UUID  `json:"productId"`
	SpecID       *uuid.UUID `json:"specId"`
	VendorID     string     `json:"vendorId"`
	ProductTitle string     `json:"productTitle"`
	Quantity     int        `json:"quantity"`
	Price        string     `json:"price"`
	LogiPrice    string     `json:"logiPrice"`
	Remark       string     `json:"remark"`
	SpecInfo     string     `json:"specInfo"`
}

type OrderDTO struct {
	ID             uuid.UUID      `json:"id"`
	UserID         string         `json:"userId"`
	AddressID      uuid.UUID      `json:"addressId"`
	Address        *AddressDTO    `json:"address,omitempty"`
	TotalPrice     string         `json:"totalPrice"`
	Currency       string         `json:"currency"`
	Status         string         `json:"status"`
	BuyerStatus    string         `json:"buyerStatus"`
	TrackingNumber *string        `json:"trackingNumber"`
	ShippingInfo   *string        `json:"shippingInfo"`
	RefundInfo     *string        `json:"refundInfo"`
	PaidAt         *time.Time     `json:"paidAt"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	Items          []OrderItemDTO `json:"items"`
}

type CheckoutItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	SpecID    uuid.UUID `json:"specId"`
	Quantity  int       `json:"quantity"`
	Remark    string    `json:"remark"`
}

type CheckoutRequest struct {
	AddressID uuid.UUID             `json:"addressId"`
	Items     []CheckoutItemRequest `json:"items"`
}

type CartCheckoutRequest struct {
	AddressID   uuid.UUID            `json:"addressId"`
	CartItemIDs []uuid.UUID          `json:"cartItemIds"`
	Remarks     map[uuid.UUID]string `json:"remarks"`
}

type StatusUpdateRequest struct {
	Status         string  `json:"status"`
	TrackingNumber *string `json:"trackingNumber"`
	ShippingInfo   *string `json:"shippingInfo"`
	RefundInfo     *string `json:"refundInfo"`
}

type IDsRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type TransactionSummaryDTO struct {
	Count  int    `json:"count"`
	Amount string `json:"amount"`
}

type OrderStatsResponse struct {
	Total        int                              `json:"total"`
	ByStatus     map[string]int                   `json:"byStatus"`
	Transactions map[string]TransactionSummaryDTO `json:"transactions"`
}

// MonthlyVendorDTO keeps month as 1..12. Year disambiguates cross-year reports.
type MonthlyVendorDTO struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	OrderCount  int    `json:"orderCount"`
	TotalAmount string `json:"totalAmount"`
}

type VendorDTO struct {
	VendorID    string             `json:"vendorId"`
	VendorName  string             `json:"vendorName"`
	TotalOrders int                `json:"totalOrders"`
	TotalAmount string             `json:"totalAmount"`
	MonthlyData []MonthlyVendorDTO `json:"monthlyData"`
}

type VendorReportResponse struct {
	Vendors    []VendorDTO `json:"vendors"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

type VendorRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type StockAlertDTO struct {
	SpecID       uuid.UUID    `json:"specId"`
	SpecName     string       `json:"specName"`
	SpecValue    string       `json:"specValue"`
	Stock        int          `json:"stock"`
	Price        string       `json:"price"`
	ProductID    uuid.UUID    `json:"productId"`
	ProductTitle string       `json:"productTitle"`
	Vendor       VendorRefDTO `json:"vendor"`
}

type SpecDTO struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Value string          `json:"value"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
	Image string          `json:"image"`
}

type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	VendorID    string          `json:"vendorId"`
	VendorName  string          `json:"vendorName"`
	Logistics   string          `json:"logistics"`
	LogiPrice   decimal.Decimal `json:"logiPrice"`
	MinQuantity int             `json:"minQuantity"`
	IsActive    bool            `json:"isActive"`
	Specs       []SpecDTO       `json:"specs"`
}

type StockRequest struct {
	Stock int `json:"stock"`
}

type PriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

type CartItemDTO struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	SpecID    uuid.UUID `json:"specId"`
	Quantity  int       `json:"quantity"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

type IDResponse struct {
	ID uuid.UUID `json:"id"`
}

func amount(m domain.Money) string {
	return m.Amount.StringFixed(2)
}

func toAddressDTO(a domain.Address) AddressDTO {
	return AddressDTO{
		ID:        a.ID,
		Name:      a.Recipient,
		Phone:     a.Phone,
		Province:  a.Province,
		City:      a.City,
		District:  a.District,
		Address:   a.Detail,
		IsDefault: a.IsDefault,
	}
}

func toOrderDTO(o domain.Order, _ int) OrderDTO {
	dto := OrderDTO{
		ID:             o.ID,
		UserID:         o.UserID,
		AddressID:      o.AddressID,
		TotalPrice:     amount(o.Total),
		Currency:       o.Total.Currency.String(),
		Status:         o.Status.String(),
		BuyerStatus:    string(domain.BuyerStatusOf(o.Status)),
		TrackingNumber: o.TrackingNumber,
		ShippingInfo:   o.ShippingInfo,
		RefundInfo:     o.RefundInfo,
		PaidAt:         o.PaidAt,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		Items: lo.Map(o.Items, func(item domain.OrderItem, _ int) OrderItemDTO {
			return OrderItemDTO{
				ID:           item.ID,
				ProductID:    item.ProductID,
				SpecID:       item.VariantID,
				VendorID:     item.VendorID,
				ProductTitle: item.ProductTitle,
				Quantity:     item.Quantity,
				Price:        amount(item.Price),
				LogiPrice:    amount(item.LogisticsPrice),
				Remark:       item.Remark,
				SpecInfo:     item.SpecInfo,
			}
		}),
	}

	if o.Address != nil {
		dto.Address = lo.ToPtr(toAddressDTO(*o.Address))
	}

	return dto
}

func toOrderDTOs(orders []domain.Order) []OrderDTO {
	return lo.Map(orders, toOrderDTO)
}

func toVendorReportResponse(page domain.VendorReportPage) VendorReportResponse {
	return VendorReportResponse{
		Vendors: lo.Map(page.Vendors, func(v domain.VendorAggregate, _ int) VendorDTO {
			return VendorDTO{
				VendorID:    v.VendorID,
				VendorName:  v.VendorName,
				TotalOrders: v.TotalOrders,
				TotalAmount: amount(v.TotalAmount),
				MonthlyData: lo.Map(v.MonthlyData, func(m domain.MonthlyVendorData, _ int) MonthlyVendorDTO {
					return MonthlyVendorDTO{
						Year:        m.Year,
						Month:       m.Month,
						OrderCount:  m.OrderCount,
						TotalAmount: amount(m.TotalAmount),
					}
				}),
			}
		}),
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}

func toOrderStatsResponse(stats domain.OrderStats, tx domain.TransactionStats) OrderStatsResponse {
	summary := func(s domain.TransactionSummary) TransactionSummaryDTO {
		return TransactionSummaryDTO{Count: s.Count, Amount: amount(s.Amount)}
	}

	return OrderStatsResponse{
		Total: stats.Total,
		ByStatus: map[string]int{
			domain.OrderStatusPending.String():   stats.Pending,
			domain.OrderStatusPaid.String():      stats.Paid,
			domain.OrderStatusShipped.String():   stats.Shipped,
			domain.OrderStatusCompleted.String(): stats.Completed,
			domain.OrderStatusCancelled.String(): stats.Cancelled,
		},
		Transactions: map[string]TransactionSummaryDTO{
			"total":        summary(tx.Total),
			"today":        summary(tx.Today),
			"yesterday":    summary(tx.Yesterday),
			"currentMonth": summary(tx.CurrentMonth),
			"lastMonth":    summary(tx.LastMonth),
		},
	}
}

func toStockAlertDTO(a domain.StockAlert, _ int) StockAlertDTO {
	return StockAlertDTO{
		SpecID:       a.VariantID,
		SpecName:     a.VariantName,
		SpecValue:    a.VariantValue,
		Stock:        a.Stock,
		Price:        amount(a.Price),
		ProductID:    a.ProductID,
		ProductTitle: a.ProductTitle,
		Vendor:       VendorRefDTO{ID: a.Vendor.ID, Name: a.Vendor.Name},
	}
}

func toProductDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Title:       p.Title,
		VendorID:    p.VendorID,
		VendorName:  p.VendorName,
		Logistics:   p.Logistics,
		LogiPrice:   p.LogisticsPrice.Amount,
		MinQuantity: p.MinQuantity,
		IsActive:    p.IsActive,
		Specs: lo.Map(p.Variants, func(v domain.Variant, _ int) SpecDTO {
			return SpecDTO{
				ID:    v.ID,
				Name:  v.Name,
				Value: v.Value,
				Price: v.Price.Amount,
				Stock: v.Stock,
				Image: v.Image,
			}
		}),
	}
}
