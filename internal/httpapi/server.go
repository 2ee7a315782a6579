// Package httpapi отдаёт REST API витрины поверх gin. Ответы обёрнуты
// в конверт {success, data, message}.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/cart"
	"github.com/vladislavdragonenkov/storefront/internal/service/checkout"
	"github.com/vladislavdragonenkov/storefront/internal/service/idempotency"
)

// IdempotencyKeyHeader — заголовок для повторяемого оформления заказа.
const IdempotencyKeyHeader = "Idempotency-Key"

// ReplayedHeader выставляется, если ответ взят из кэша идемпотентности.
const ReplayedHeader = "Idempotent-Replayed"

// Server держит gin.Engine и сервисы, которые он вызывает.
type Server struct {
	engine   *gin.Engine
	carts    *cart.Service
	checkout *checkout.Service
	catalog  *catalog.Service
	promos   domain.PromoCodeRegistry
	guard    *idempotency.Guard
	logger   *log.Entry
	now      func() time.Time
}

// Option настраивает Server.
type Option func(*Server)

// WithLogger задаёт logger.
func WithLogger(logger *log.Entry) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIdempotencyGuard включает Idempotency-Key для POST /api/orders.
func WithIdempotencyGuard(guard *idempotency.Guard) Option {
	return func(s *Server) {
		s.guard = guard
	}
}

// WithClock подменяет время в ответе /api/health.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// NewServer собирает gin.Engine со всеми маршрутами.
func NewServer(
	carts *cart.Service,
	checkoutSvc *checkout.Service,
	catalogSvc *catalog.Service,
	promos domain.PromoCodeRegistry,
	opts ...Option,
) *Server {
	s := &Server{
		engine:   gin.New(),
		carts:    carts,
		checkout: checkoutSvc,
		catalog:  catalogSvc,
		promos:   promos,
		logger:   log.WithField("component", "http-api"),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine.Use(gin.Recovery(), requestLogger(s.logger))
	s.registerRoutes()
	return s
}

// Engine возвращает http.Handler для сервера и тестов.
func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/promo-codes", s.listPromoCodes)

		products := api.Group("/products")
		products.GET("", s.listProducts)
		products.GET("/:id", s.getProduct)
		products.POST("", s.addProduct)

		carts := api.Group("/cart/:sessionId")
		carts.GET("", s.getCart)
		carts.DELETE("", s.clearCart)
		carts.POST("/add", s.addToCart)
		carts.PUT("/update", s.updateCart)
		carts.DELETE("/items/:productId", s.removeFromCart)
		carts.POST("/promo", s.applyPromo)

		orders := api.Group("/orders")
		orders.POST("", s.placeOrder)
		orders.GET("", s.listOrders)
		orders.GET("/:id", s.getOrder)
	}

	s.engine.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "API endpoint not found")
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "API is running",
		"timestamp": s.now().Format(time.RFC3339),
	})
}

func requestLogger(logger *log.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("http request failed")
			return
		}
		entry.Debug("http request served")
	}
}
