package http

import (
	"net/http"
	"strconv"

	"fitshop/internal/domain"

	"github.com/gin-gonic/gin"
)

const IdempotencyHeader = "Idempotency-Key"

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order payload"})
		return
	}

	id, _ := identity(c)
	in := domain.NewOrder{
		UserID:         id.UserID,
		Lines:          make([]domain.OrderLine, 0, len(req.Items)),
		PaymentMethod:  req.PaymentMethod,
		IdempotencyKey: c.GetHeader(IdempotencyHeader),
	}
	if len(req.ShippingAddress) > 0 {
		in.ShippingAddress = string(req.ShippingAddress)
	}
	for _, item := range req.Items {
		pid := item.productID()
		if pid == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order payload"})
			return
		}
		in.Lines = append(in.Lines, domain.OrderLine{ProductID: pid, Quantity: item.Quantity})
	}

	order, replayed, err := h.orders.CreateOrder(c.Request.Context(), in, req.Total)
	if err != nil {
		status, msg := errorResponse(c, err, "Error creating order")
		c.JSON(status, gin.H{"success": false, "message": msg})
		return
	}

	msg := "Order created successfully"
	if replayed {
		msg = "Order already placed"
	}
	c.JSON(http.StatusOK, CreateOrderResponse{Success: true, OrderID: order.ID, Message: msg})
}

func (h *Handler) ListOrders(c *gin.Context) {
	id, _ := identity(c)
	orders, err := h.orders.ListOrders(c.Request.Context(), id.UserID)
	if err != nil {
		respondError(c, err, "Error fetching orders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) GetOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order id"})
		return
	}

	id, _ := identity(c)
	order, err := h.orders.GetOrder(c.Request.Context(), id.UserID, orderID)
	if err != nil {
		respondError(c, err, "Error fetching order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}
