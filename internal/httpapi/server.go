package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/nikolayk812/ordercore/internal/service"
	"go.uber.org/zap"
)

// CustomerIDHeader carries the customer authenticated by the identity collaborator.
const CustomerIDHeader = "X-Customer-ID"

type OrderService interface {
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (domain.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	QuotePrice(ctx context.Context, productID uuid.UUID, quantity int) (domain.PriceQuote, error)
	SetStock(ctx context.Context, productID uuid.UUID, stock int) error
	TransitionStatus(ctx context.Context, orderID uuid.UUID, next domain.OrderStatus) (domain.Order, error)
	BulkTransition(ctx context.Context, orderIDs []uuid.UUID, next domain.OrderStatus) (service.BulkResult, error)
	GetCustomerStats(ctx context.Context, customerID uuid.UUID) (domain.CustomerStats, error)
}

type Server struct {
	echo   *echo.Echo
	svc    OrderService
	logger *zap.Logger
}

func NewServer(svc OrderService, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, svc: svc, logger: logger}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency))
			return nil
		},
	}))

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	api := s.echo.Group("/api")

	api.GET("/products/:id/price-for-qty", s.priceForQty)
	api.POST("/orders", s.createOrder)
	api.GET("/orders/:id", s.getOrder)
	api.GET("/customers/:id/stats", s.getCustomerStats)

	admin := api.Group("/admin")
	admin.GET("/orders", s.searchOrders)
	admin.POST("/orders/:id/status", s.setOrderStatus)
	admin.POST("/orders/bulk-status", s.bulkOrderStatus)
	admin.PUT("/products/:id/stock", s.setStock)
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(addr string) error {
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("echo.Start: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) priceForQty(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	qty := 1
	if raw := c.QueryParam("qty"); raw != "" {
		qty, err = strconv.Atoi(raw)
		if err != nil || domain.ValidateQuantity(qty) != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid qty parameter", nil)
		}
	}

	quote, err := s.svc.QuotePrice(c.Request().Context(), productID, qty)
	if err != nil {
		return s.failErr(c, "Failed to price product", err)
	}

	return ok(c, toPriceQuoteResponse(quote))
}

func (s *Server) createOrder(c echo.Context) error {
	var customerID *uuid.UUID
	if raw := c.Request().Header.Get(CustomerIDHeader); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID", nil)
		}
		customerID = &id
	}

	var payload createOrderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", err.Error())
	}

	order, err := s.svc.CreateOrder(c.Request().Context(), payload.toRequest(customerID))
	if err != nil {
		return s.failErr(c, "Failed to create order", err)
	}

	return created(c, toOrderResponse(order))
}

func (s *Server) getOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}

	order, err := s.svc.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return s.failErr(c, "Failed to get order", err)
	}

	return ok(c, toOrderResponse(order))
}

func (s *Server) searchOrders(c echo.Context) error {
	var filter domain.OrderFilter

	for _, raw := range splitQuery(c.QueryParam("customer_id")) {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID", raw)
		}
		filter.CustomerIDs = append(filter.CustomerIDs, id)
	}

	for _, raw := range splitQuery(c.QueryParam("status")) {
		status, err := domain.ToOrderStatus(raw)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid status", raw)
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid limit parameter", nil)
		}
		filter.Limit = limit
	}

	orders, err := s.svc.SearchOrders(c.Request().Context(), filter)
	if err != nil {
		return s.failErr(c, "Failed to search orders", err)
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}

	return ok(c, resp)
}

func (s *Server) setOrderStatus(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}

	var payload statusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", err.Error())
	}

	status, err := domain.ToOrderStatus(payload.Status)
	if err != nil {
		return s.failErr(c, "Invalid status", err)
	}

	order, err := s.svc.TransitionStatus(c.Request().Context(), orderID, status)
	if err != nil {
		return s.failErr(c, "Failed to change order status", err)
	}

	return ok(c, toOrderResponse(order))
}

func (s *Server) bulkOrderStatus(c echo.Context) error {
	var payload bulkStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse bulk action", err.Error())
	}

	status, err := domain.ToOrderStatus(payload.Status)
	if err != nil {
		return s.failErr(c, "Invalid status", err)
	}

	result, err := s.svc.BulkTransition(c.Request().Context(), payload.OrderIDs, status)
	if err != nil {
		return s.failErr(c, "Failed to change order statuses", err)
	}

	return ok(c, toBulkStatusResponse(result))
}

func (s *Server) setStock(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var payload stockPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse stock", err.Error())
	}
	if payload.Stock == nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Stock is required", nil)
	}

	if err := s.svc.SetStock(c.Request().Context(), productID, *payload.Stock); err != nil {
		return s.failErr(c, "Failed to set stock", err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) getCustomerStats(c echo.Context) error {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID", nil)
	}

	stats, err := s.svc.GetCustomerStats(c.Request().Context(), customerID)
	if err != nil {
		return s.failErr(c, "Failed to get customer statistics", err)
	}

	return ok(c, toCustomerStatsResponse(stats))
}

func splitQuery(raw string) []string {
	var parts []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
