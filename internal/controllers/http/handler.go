package http

import (
	"fmt"
	"net/http"

	"fitshop/internal/services"

	"github.com/gin-gonic/gin"
)

type Services struct {
	Auth    *services.AuthService
	Catalog *services.CatalogService
	Cart    *services.CartService
	Orders  *services.OrderService
	Tips    *services.TipsService
	Fitness *services.FitnessService
}

type Options struct {
	// SecureCookies sets the Secure flag on the session cookie.
	SecureCookies     bool
	TipsRatePerMinute int
	AuthRatePerMinute int
}

type Handler struct {
	auth    *services.AuthService
	catalog *services.CatalogService
	cart    *services.CartService
	orders  *services.OrderService
	tips    *services.TipsService
	fitness *services.FitnessService
	opts    Options
}

func NewHandler(s Services, opts Options) *Handler {
	return &Handler{
		auth:    s.Auth,
		catalog: s.Catalog,
		cart:    s.Cart,
		orders:  s.Orders,
		tips:    s.Tips,
		fitness: s.Fitness,
		opts:    opts,
	}
}

// NewEngine returns a bare gin engine that only trusts X-Forwarded-For from
// trustedProxies. With none configured, ClientIP is the peer address, so the
// per-IP limiters cannot be dodged by rotating that header.
func NewEngine(trustedProxies []string) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	return r, nil
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/products", h.ListProducts)

	authLimit := rateLimit(h.opts.AuthRatePerMinute)
	r.POST("/signup", authLimit, h.Signup)
	r.POST("/login", authLimit, h.Login)
	r.POST("/logout", h.Logout)

	r.POST("/ai-tips", rateLimit(h.opts.TipsRatePerMinute), h.AITips)
	r.POST("/fitness/calculate", h.optionalAuth(), h.Calculate)

	protected := r.Group("", h.requireAuth())
	protected.GET("/cart", h.GetCart)
	protected.POST("/cart/add", h.AddToCart)
	protected.PUT("/cart/update/:productId", h.UpdateCart)
	protected.DELETE("/cart/remove/:productId", h.RemoveFromCart)
	protected.DELETE("/cart/clear", h.ClearCart)

	protected.POST("/orders/create", h.CreateOrder)
	protected.GET("/orders", h.ListOrders)
	protected.GET("/orders/:id", h.GetOrder)

	protected.GET("/fitness/history", h.FitnessHistory)
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}
