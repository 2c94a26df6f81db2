package httpapi

import (
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/nikolayk812/ordercore/internal/service"
	"github.com/samber/lo"
)

type priceQuoteResponse struct {
	ProductID  uuid.UUID `json:"product_id"`
	Qty        int       `json:"qty"`
	UnitPrice  string    `json:"unit_price"`
	TotalPrice string    `json:"total_price"`
	Currency   string    `json:"currency"`
}

func toPriceQuoteResponse(q domain.PriceQuote) priceQuoteResponse {
	return priceQuoteResponse{
		ProductID:  q.ProductID,
		Qty:        q.Quantity,
		UnitPrice:  q.UnitPrice.String(),
		TotalPrice: q.TotalPrice.String(),
		Currency:   q.UnitPrice.Currency.String(),
	}
}

type createOrderItemPayload struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type createOrderPayload struct {
	CustomerName    string                   `json:"customer_name"`
	CustomerPhone   string                   `json:"customer_phone"`
	CustomerEmail   string                   `json:"customer_email"`
	CustomerCity    string                   `json:"customer_city"`
	CustomerAddress string                   `json:"customer_address"`
	Items           []createOrderItemPayload `json:"items"`
}

func (p createOrderPayload) toRequest(customerID *uuid.UUID) service.CreateOrderRequest {
	return service.CreateOrderRequest{
		CustomerID: customerID,
		Contact: domain.ContactSnapshot{
			Name:    p.CustomerName,
			Phone:   p.CustomerPhone,
			Email:   p.CustomerEmail,
			City:    p.CustomerCity,
			Address: p.CustomerAddress,
		},
		Items: lo.Map(p.Items, func(item createOrderItemPayload, _ int) service.CreateOrderItem {
			return service.CreateOrderItem{ProductID: item.ProductID, Quantity: item.Quantity}
		}),
	}
}

type orderItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	LineTotal   string    `json:"line_total"`
}

type orderResponse struct {
	ID              uuid.UUID           `json:"id"`
	CustomerID      *uuid.UUID          `json:"customer_id"`
	Status          string              `json:"status"`
	Total           string              `json:"total"`
	Currency        string              `json:"currency"`
	CustomerName    string              `json:"customer_name"`
	CustomerPhone   string              `json:"customer_phone"`
	CustomerEmail   string              `json:"customer_email"`
	CustomerCity    string              `json:"customer_city"`
	CustomerAddress string              `json:"customer_address"`
	Items           []orderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		Status:          string(o.Status),
		Total:           o.Total.String(),
		Currency:        o.Total.Currency.String(),
		CustomerName:    o.Contact.Name,
		CustomerPhone:   o.Contact.Phone,
		CustomerEmail:   o.Contact.Email,
		CustomerCity:    o.Contact.City,
		CustomerAddress: o.Contact.Address,
		Items: lo.Map(o.Items, func(item domain.OrderItem, _ int) orderItemResponse {
			return orderItemResponse{
				ID:          item.ID,
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice.String(),
				LineTotal:   item.LineTotal().String(),
			}
		}),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

type statusPayload struct {
	Status string `json:"status"`
}

type bulkStatusPayload struct {
	OrderIDs []uuid.UUID `json:"order_ids"`
	Status   string      `json:"status"`
}

type bulkFailureResponse struct {
	OrderID uuid.UUID `json:"order_id"`
	Error   string    `json:"error"`
}

type bulkStatusResponse struct {
	Succeeded []uuid.UUID           `json:"succeeded"`
	Skipped   []uuid.UUID           `json:"skipped"`
	Failed    []bulkFailureResponse `json:"failed"`
}

func toBulkStatusResponse(r service.BulkResult) bulkStatusResponse {
	return bulkStatusResponse{
		Succeeded: lo.Ternary(r.Succeeded == nil, []uuid.UUID{}, r.Succeeded),
		Skipped:   lo.Ternary(r.Skipped == nil, []uuid.UUID{}, r.Skipped),
		Failed: lo.Map(r.Failed, func(f service.BulkFailure, _ int) bulkFailureResponse {
			return bulkFailureResponse{OrderID: f.OrderID, Error: f.Err.Error()}
		}),
	}
}

type stockPayload struct {
	Stock *int `json:"stock"`
}

type customerStatsResponse struct {
	CustomerID    uuid.UUID  `json:"customer_id"`
	OrdersCount   int        `json:"orders_count"`
	TotalSpent    string     `json:"total_spent"`
	Currency      string     `json:"currency"`
	LastOrderDate *time.Time `json:"last_order_date"`
	VIPStatus     string     `json:"vip_status"`
	Note          string     `json:"note"`
}

func toCustomerStatsResponse(s domain.CustomerStats) customerStatsResponse {
	return customerStatsResponse{
		CustomerID:    s.CustomerID,
		OrdersCount:   s.OrdersCount,
		TotalSpent:    s.TotalSpent.String(),
		Currency:      s.TotalSpent.Currency.String(),
		LastOrderDate: s.LastOrderDate,
		VIPStatus:     string(s.VIPStatus),
		Note:          s.Note,
	}
}
