package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	storefrontv1 "github.com/vladislavdragonenkov/storefront/api/storefront/v1"
	"github.com/vladislavdragonenkov/storefront/internal/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/cart"
	"github.com/vladislavdragonenkov/storefront/internal/service/idempotency"
)

const idempotencyScope = "http"

// Catalog handlers

func (s *Server) listProducts(c *gin.Context) {
	products, err := s.catalog.List(domain.ProductFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	if err != nil {
		s.failErr(c, err, "Failed to fetch products")
		return
	}
	okList(c, storefrontv1.FromProducts(products), len(products))
}

func (s *Server) getProduct(c *gin.Context) {
	product, err := s.catalog.Get(c.Param("id"))
	if err != nil {
		s.failErr(c, err, "Failed to fetch product")
		return
	}
	ok(c, http.StatusOK, storefrontv1.FromProduct(product), "")
}

type addProductReq struct {
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
}

func (s *Server) addProduct(c *gin.Context) {
	var req addProductReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Price.IsZero() {
		fail(c, http.StatusBadRequest, "Name, price, and category are required")
		return
	}

	product, err := s.catalog.Add(catalog.NewProductInput{
		Name:        req.Name,
		UnitPrice:   req.Price,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.Image,
	})
	if err != nil {
		s.failErr(c, err, "Failed to add product")
		return
	}
	ok(c, http.StatusCreated, storefrontv1.FromProduct(product), "Product added successfully")
}

func (s *Server) listPromoCodes(c *gin.Context) {
	ok(c, http.StatusOK, storefrontv1.FromPromoCodes(s.promos.List()), "")
}

// Cart handlers

func cartData(view cart.View) storefrontv1.Cart {
	return storefrontv1.FromCart(view.Cart, view.Quote)
}

func (s *Server) getCart(c *gin.Context) {
	view, err := s.carts.Get(c.Param("sessionId"))
	if err != nil {
		s.failErr(c, err, "Failed to fetch cart")
		return
	}
	ok(c, http.StatusOK, cartData(view), "")
}

type addToCartReq struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

func (s *Server) addToCart(c *gin.Context) {
	var req addToCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Product ID is required")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	view, err := s.carts.Add(c.Param("sessionId"), req.ProductID, quantity)
	if err != nil {
		s.failErr(c, err, "Failed to add to cart")
		return
	}
	ok(c, http.StatusOK, cartData(view), "Product added to cart")
}

type updateCartReq struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) updateCart(c *gin.Context) {
	var req updateCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Product ID is required")
		return
	}

	view, err := s.carts.UpdateQuantity(c.Param("sessionId"), req.ProductID, req.Quantity)
	if err != nil {
		s.failErr(c, err, "Failed to update cart")
		return
	}
	ok(c, http.StatusOK, cartData(view), "Cart updated successfully")
}

func (s *Server) removeFromCart(c *gin.Context) {
	view, removed, err := s.carts.Remove(c.Param("sessionId"), c.Param("productId"))
	if err != nil {
		s.failErr(c, err, "Failed to remove item")
		return
	}
	message := "Item removed from cart"
	if !removed {
		message = "Item was not in cart"
	}
	ok(c, http.StatusOK, cartData(view), message)
}

func (s *Server) clearCart(c *gin.Context) {
	view, err := s.carts.Clear(c.Param("sessionId"))
	if err != nil {
		s.failErr(c, err, "Failed to clear cart")
		return
	}
	ok(c, http.StatusOK, cartData(view), "Cart cleared")
}

type applyPromoReq struct {
	PromoCode string `json:"promoCode" binding:"required"`
}

func (s *Server) applyPromo(c *gin.Context) {
	var req applyPromoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Promo code is required")
		return
	}

	view, err := s.carts.ApplyPromo(c.Param("sessionId"), req.PromoCode)
	if err != nil {
		s.failErr(c, err, "Failed to apply promo code")
		return
	}
	ok(c, http.StatusOK, cartData(view), "Promo code applied successfully")
}

// Order handlers

type customerReq struct {
	FullName string               `json:"fullName"`
	Email    string               `json:"email"`
	Phone    string               `json:"phone"`
	Address  storefrontv1.Address `json:"address"`
}

type placeOrderReq struct {
	SessionID string      `json:"sessionId" binding:"required"`
	Customer  customerReq `json:"customer"`
}

func (r placeOrderReq) customer() storefrontv1.Customer {
	return storefrontv1.Customer{
		Name:    r.Customer.FullName,
		Email:   r.Customer.Email,
		Phone:   r.Customer.Phone,
		Address: r.Customer.Address,
	}
}

// placeOrder оформляет заказ. С заголовком Idempotency-Key повтор того же
// запроса возвращает сохранённый ответ, включая ошибку.
func (s *Server) placeOrder(c *gin.Context) {
	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Session ID is required")
		return
	}

	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	hash, err := idempotency.HashRequest(idempotencyScope+":place-order", req)
	if err != nil {
		s.failErr(c, err, "Failed to place order")
		return
	}

	result, err := s.guard.Execute(idempotencyScope, key, hash, func() (idempotency.Response, bool) {
		return s.placeOrderResponse(req)
	})
	if err != nil {
		s.failErr(c, err, "Failed to place order")
		return
	}

	if result.Replayed {
		c.Header(ReplayedHeader, "true")
	}
	c.Data(result.Code, "application/json; charset=utf-8", result.Body)
}

func (s *Server) placeOrderResponse(req placeOrderReq) (idempotency.Response, bool) {
	order, err := s.checkout.PlaceOrder(req.SessionID, storefrontv1.ToCustomer(req.customer()))

	var (
		code int
		body envelope
	)
	switch {
	case err == nil:
		code = http.StatusCreated
		body = envelope{Success: true, Data: storefrontv1.FromOrder(order), Message: "Order placed successfully"}
	case statusCode(err) == http.StatusInternalServerError:
		s.logger.WithError(err).WithField("session_id", req.SessionID).Error("place order failed")
		code = http.StatusInternalServerError
		body = envelope{Message: "Failed to place order"}
	default:
		code = statusCode(err)
		body = envelope{Message: err.Error()}
	}

	raw, marshalErr := json.Marshal(body)
	if marshalErr != nil {
		s.logger.WithError(marshalErr).Error("failed to encode order response")
		return idempotency.Response{
			Code: http.StatusInternalServerError,
			Body: []byte(`{"success":false,"message":"Failed to place order"}`),
		}, false
	}
	return idempotency.Response{Code: code, Body: raw}, err == nil
}

func (s *Server) listOrders(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			fail(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	orders, err := s.checkout.ListOrders(c.Query("sessionId"), limit)
	if err != nil {
		s.failErr(c, err, "Failed to fetch orders")
		return
	}
	okList(c, storefrontv1.FromOrders(orders), len(orders))
}

func (s *Server) getOrder(c *gin.Context) {
	order, err := s.checkout.GetOrder(c.Param("id"))
	if err != nil {
		s.failErr(c, err, "Failed to fetch order")
		return
	}
	ok(c, http.StatusOK, storefrontv1.FromOrder(order), "")
}
