package http

import (
	"net/http"
	"strconv"

	"fitshop/internal/domain"

	"github.com/gin-gonic/gin"
)

func productIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) GetCart(c *gin.Context) {
	id, _ := identity(c)
	cart, err := h.cart.Get(c.Request.Context(), id.UserID)
	if err != nil {
		respondError(c, err, "Error fetching cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": bindMessage(err, "productId is required")})
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	id, _ := identity(c)
	cart, err := h.cart.Add(c.Request.Context(), id.UserID, req.ProductID, qty)
	if err != nil {
		respondError(c, err, "Error adding to cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart, "message": "Item added to cart"})
}

func (h *Handler) UpdateCart(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}
	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": bindMessage(err, "quantity must be at least 1")})
		return
	}

	id, _ := identity(c)
	cart, err := h.cart.Update(c.Request.Context(), id.UserID, productID, req.Quantity)
	if err != nil {
		respondError(c, err, "Error updating cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	id, _ := identity(c)
	cart, err := h.cart.Remove(c.Request.Context(), id.UserID, productID)
	if err != nil {
		respondError(c, err, "Error removing from cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart, "message": "Item removed from cart"})
}

func (h *Handler) ClearCart(c *gin.Context) {
	id, _ := identity(c)
	if _, err := h.cart.Clear(c.Request.Context(), id.UserID); err != nil {
		respondError(c, err, "Error clearing cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": domain.EmptyCart(), "message": "Cart cleared"})
}
