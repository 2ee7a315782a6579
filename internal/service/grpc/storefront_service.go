// Package grpcsvc реализует gRPC API витрины поверх сервисов корзины,
// оформления заказов и каталога.
package grpcsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	storefrontv1 "github.com/vladislavdragonenkov/storefront/api/storefront/v1"
	"github.com/vladislavdragonenkov/storefront/internal/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/cart"
	"github.com/vladislavdragonenkov/storefront/internal/service/checkout"
	"github.com/vladislavdragonenkov/storefront/internal/service/idempotency"
)

const (
	// IdempotencyKeyHeader — ключ metadata для повторяемого PlaceOrder.
	IdempotencyKeyHeader = "idempotency-key"

	idempotencyScope = "grpc"
)

// StorefrontService реализует storefrontv1.StorefrontServiceServer.
type StorefrontService struct {
	storefrontv1.UnimplementedStorefrontServiceServer

	carts    *cart.Service
	checkout *checkout.Service
	catalog  *catalog.Service
	promos   domain.PromoCodeRegistry
	guard    *idempotency.Guard
	logger   *log.Entry
}

// Option настраивает StorefrontService.
type Option func(*StorefrontService)

// WithLogger задаёт logger.
func WithLogger(logger *log.Entry) Option {
	return func(s *StorefrontService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIdempotencyGuard включает повтор ответа PlaceOrder по idempotency-key.
func WithIdempotencyGuard(guard *idempotency.Guard) Option {
	return func(s *StorefrontService) {
		s.guard = guard
	}
}

// NewStorefrontService конструирует сервис с зависимостями.
func NewStorefrontService(
	carts *cart.Service,
	checkoutSvc *checkout.Service,
	catalogSvc *catalog.Service,
	promos domain.PromoCodeRegistry,
	opts ...Option,
) *StorefrontService {
	s := &StorefrontService{
		carts:    carts,
		checkout: checkoutSvc,
		catalog:  catalogSvc,
		promos:   promos,
		logger:   log.WithField("component", "grpc-storefront"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *StorefrontService) GetCart(_ context.Context, req *storefrontv1.GetCartRequest) (*storefrontv1.CartResponse, error) {
	view, err := s.carts.Get(req.SessionID)
	if err != nil {
		return nil, s.fail("GetCart", err)
	}
	return cartResponse(view, false), nil
}

func (s *StorefrontService) AddItem(_ context.Context, req *storefrontv1.AddItemRequest) (*storefrontv1.CartResponse, error) {
	view, err := s.carts.Add(req.SessionID, req.ProductID, req.GetQuantity())
	if err != nil {
		return nil, s.fail("AddItem", err)
	}
	return cartResponse(view, false), nil
}

func (s *StorefrontService) UpdateItem(_ context.Context, req *storefrontv1.UpdateItemRequest) (*storefrontv1.CartResponse, error) {
	view, err := s.carts.UpdateQuantity(req.SessionID, req.ProductID, req.Quantity)
	if err != nil {
		return nil, s.fail("UpdateItem", err)
	}
	return cartResponse(view, false), nil
}

func (s *StorefrontService) RemoveItem(_ context.Context, req *storefrontv1.RemoveItemRequest) (*storefrontv1.CartResponse, error) {
	view, removed, err := s.carts.Remove(req.SessionID, req.ProductID)
	if err != nil {
		return nil, s.fail("RemoveItem", err)
	}
	return cartResponse(view, removed), nil
}

func (s *StorefrontService) ClearCart(_ context.Context, req *storefrontv1.ClearCartRequest) (*storefrontv1.CartResponse, error) {
	view, err := s.carts.Clear(req.SessionID)
	if err != nil {
		return nil, s.fail("ClearCart", err)
	}
	return cartResponse(view, false), nil
}

func (s *StorefrontService) ApplyPromo(_ context.Context, req *storefrontv1.ApplyPromoRequest) (*storefrontv1.CartResponse, error) {
	view, err := s.carts.ApplyPromo(req.SessionID, req.Code)
	if err != nil {
		return nil, s.fail("ApplyPromo", err)
	}
	return cartResponse(view, false), nil
}

// PlaceOrder оформляет заказ. Если в metadata передан idempotency-key,
// повторный вызов с тем же ключом и телом возвращает сохранённый ответ.
func (s *StorefrontService) PlaceOrder(ctx context.Context, req *storefrontv1.PlaceOrderRequest) (*storefrontv1.OrderResponse, error) {
	key := readIdempotencyKey(ctx)
	if key == "" || s.guard == nil {
		return s.placeOrder(req)
	}

	hash, err := idempotency.HashRequest(storefrontv1.StorefrontService_PlaceOrder_FullMethodName, req)
	if err != nil {
		return nil, s.fail("PlaceOrder", err)
	}

	result, err := s.guard.Execute(idempotencyScope, key, hash, func() (idempotency.Response, bool) {
		resp, placeErr := s.placeOrder(req)
		if placeErr != nil {
			return encodeFailure(placeErr), false
		}
		body, marshalErr := json.Marshal(resp)
		if marshalErr != nil {
			s.logger.WithError(marshalErr).Warn("failed to encode order response for idempotency cache")
			return idempotency.Response{Code: int(codes.OK)}, true
		}
		return idempotency.Response{Code: int(codes.OK), Body: body}, true
	})
	if err != nil {
		return nil, s.fail("PlaceOrder", err)
	}

	if result.Failed {
		return nil, decodeFailure(result.Response)
	}
	var resp storefrontv1.OrderResponse
	if err := json.Unmarshal(result.Body, &resp); err != nil {
		return nil, s.fail("PlaceOrder", fmt.Errorf("decode cached order response: %w", err))
	}
	if result.Replayed {
		s.logger.WithField("order_id", resp.Order.ID).Info("idempotent PlaceOrder replayed")
	}
	return &resp, nil
}

func (s *StorefrontService) placeOrder(req *storefrontv1.PlaceOrderRequest) (*storefrontv1.OrderResponse, error) {
	order, err := s.checkout.PlaceOrder(req.SessionID, storefrontv1.ToCustomer(req.Customer))
	if err != nil {
		return nil, s.fail("PlaceOrder", err)
	}
	return &storefrontv1.OrderResponse{Order: storefrontv1.FromOrder(order)}, nil
}

func (s *StorefrontService) ListOrders(_ context.Context, req *storefrontv1.ListOrdersRequest) (*storefrontv1.ListOrdersResponse, error) {
	orders, err := s.checkout.ListOrders(req.SessionID, req.Limit)
	if err != nil {
		return nil, s.fail("ListOrders", err)
	}
	return &storefrontv1.ListOrdersResponse{Orders: storefrontv1.FromOrders(orders)}, nil
}

func (s *StorefrontService) GetOrder(_ context.Context, req *storefrontv1.GetOrderRequest) (*storefrontv1.OrderResponse, error) {
	order, err := s.checkout.GetOrder(req.OrderID)
	if err != nil {
		return nil, s.fail("GetOrder", err)
	}
	return &storefrontv1.OrderResponse{Order: storefrontv1.FromOrder(order)}, nil
}

func (s *StorefrontService) ListPromoCodes(context.Context, *storefrontv1.ListPromoCodesRequest) (*storefrontv1.ListPromoCodesResponse, error) {
	return &storefrontv1.ListPromoCodesResponse{Codes: storefrontv1.FromPromoCodes(s.promos.List())}, nil
}

func (s *StorefrontService) ListProducts(_ context.Context, req *storefrontv1.ListProductsRequest) (*storefrontv1.ListProductsResponse, error) {
	products, err := s.catalog.List(domain.ProductFilter{Search: req.Search, Category: req.Category})
	if err != nil {
		return nil, s.fail("ListProducts", err)
	}
	return &storefrontv1.ListProductsResponse{Products: storefrontv1.FromProducts(products)}, nil
}

func (s *StorefrontService) GetProduct(_ context.Context, req *storefrontv1.GetProductRequest) (*storefrontv1.ProductResponse, error) {
	product, err := s.catalog.Get(req.ProductID)
	if err != nil {
		return nil, s.fail("GetProduct", err)
	}
	return &storefrontv1.ProductResponse{Product: storefrontv1.FromProduct(product)}, nil
}

func (s *StorefrontService) AddProduct(_ context.Context, req *storefrontv1.AddProductRequest) (*storefrontv1.ProductResponse, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v: price must be a decimal number", domain.ErrInvalidArgument)
	}

	product, err := s.catalog.Add(catalog.NewProductInput{
		Name:        req.Name,
		UnitPrice:   price,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return nil, s.fail("AddProduct", err)
	}
	return &storefrontv1.ProductResponse{Product: storefrontv1.FromProduct(product)}, nil
}

// fail логирует внутренние ошибки и возвращает gRPC-статус.
func (s *StorefrontService) fail(method string, err error) error {
	if statusCode(err) == codes.Internal {
		if _, isStatus := status.FromError(err); !isStatus {
			s.logger.WithError(err).WithField("method", method).Error("request failed")
		}
	}
	return toStatus(err)
}

func cartResponse(view cart.View, removed bool) *storefrontv1.CartResponse {
	return &storefrontv1.CartResponse{
		Cart:    storefrontv1.FromCart(view.Cart, view.Quote),
		Removed: removed,
	}
}

func readIdempotencyKey(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	for _, value := range md.Get(IdempotencyKeyHeader) {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

type cachedFailure struct {
	Code    uint32 `json:"code"`
	Message string `json:"message"`
}

func encodeFailure(err error) idempotency.Response {
	st := status.Convert(err)
	body, _ := json.Marshal(cachedFailure{Code: uint32(st.Code()), Message: st.Message()})
	return idempotency.Response{Code: int(st.Code()), Body: body}
}

func decodeFailure(resp idempotency.Response) error {
	var payload cachedFailure
	if err := json.Unmarshal(resp.Body, &payload); err != nil || payload.Code == uint32(codes.OK) {
		return status.Error(codes.Internal, "previous request with the same idempotency key failed")
	}
	return status.Error(codes.Code(payload.Code), payload.Message)
}

var _ storefrontv1.StorefrontServiceServer = (*StorefrontService)(nil)
