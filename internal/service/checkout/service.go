// Package checkout превращает корзину сессии в неизменяемый заказ.
package checkout

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/pricing"
	"github.com/vladislavdragonenkov/storefront/internal/sessionlock"
)

// Option настраивает Service.
type Option func(*Service)

// WithLogger задаёт logger.
func WithLogger(logger *log.Entry) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics задаёт метрики.
func WithMetrics(m *metrics.ShopMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLocker задаёт замок сессий; должен совпадать с замком сервиса корзины.
func WithLocker(locker *sessionlock.Locker) Option {
	return func(s *Service) {
		if locker != nil {
			s.locks = locker
		}
	}
}

// WithOutbox включает публикацию события order.placed через outbox.
func WithOutbox(outbox domain.OutboxRepository) Option {
	return func(s *Service) {
		s.outbox = outbox
	}
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator подменяет генератор идентификаторов заказов.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// Service оформляет и выдаёт заказы.
type Service struct {
	carts   domain.CartRepository
	orders  domain.OrderRepository
	engine  *pricing.Engine
	outbox  domain.OutboxRepository
	locks   *sessionlock.Locker
	metrics *metrics.ShopMetrics
	logger  *log.Entry
	now     func() time.Time
	newID   func() string
}

// NewService создаёт сервис оформления заказов.
func NewService(
	carts domain.CartRepository,
	orders domain.OrderRepository,
	engine *pricing.Engine,
	options ...Option,
) *Service {
	s := &Service{
		carts:  carts,
		orders: orders,
		engine: engine,
		locks:  sessionlock.New(),
		logger: log.WithField("component", "checkout-service"),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// PlaceOrder оформляет корзину сессии. Вся операция выполняется под замком
// сессии: снимок корзины, запись заказа и удаление корзины не пересекаются
// с мутациями той же сессии. До записи заказа корзина не меняется.
func (s *Service) PlaceOrder(sessionID string, customer domain.Customer) (order domain.Order, err error) {
	started := time.Now()
	s.metrics.RecordCheckoutStarted()
	defer func() {
		s.metrics.RecordCheckoutFinished(err, time.Since(started))
	}()

	sid, err := domain.ParseSessionID(sessionID)
	if err != nil {
		return domain.Order{}, err
	}

	unlock := s.locks.Lock(sid.String())
	defer unlock()

	cart, err := s.carts.Get(sid)
	if err != nil && !errors.Is(err, domain.ErrCartNotFound) {
		return domain.Order{}, fmt.Errorf("load cart %s: %w", sid, err)
	}
	if err != nil || cart.IsEmpty() {
		return domain.Order{}, domain.ErrEmptyCart
	}

	customer = customer.Normalize()
	if err := customer.Validate(); err != nil {
		return domain.Order{}, err
	}

	quote, err := s.engine.Quote(cart)
	if err != nil {
		return domain.Order{}, err
	}

	order = domain.Order{
		ID:        s.newID(),
		SessionID: sid,
		Customer:  customer,
		Lines:     quote.OrderLines(),
		Totals:    quote.Totals,
		Status:    domain.OrderStatusConfirmed,
		CreatedAt: s.now(),
	}
	if quote.Promo != nil {
		order.PromoCode = quote.Promo.Code
	}
	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return domain.Order{}, fmt.Errorf("order invariants violated: %w", errors.Join(errs...))
	}

	logger := s.logger.WithFields(log.Fields{
		"order_id":   order.ID,
		"session_id": sid,
	})

	if err := s.persist(order, logger); err != nil {
		logger.WithError(err).Error("failed to persist order")
		return domain.Order{}, fmt.Errorf("persist order: %w", err)
	}

	s.enqueuePlaced(order, logger)

	total, _ := order.Totals.Total.Float64()
	s.metrics.RecordOrderTotal(total)
	logger.WithField("total", order.Totals.Total.StringFixed(2)).Info("order placed")

	return order, nil
}

// ListOrders возвращает заказы в порядке оформления; пустой sessionID — все заказы.
// limit > 0 оставляет только limit самых свежих, иначе выдача не ограничена.
func (s *Service) ListOrders(sessionID string, limit int) ([]domain.Order, error) {
	if limit < 0 {
		limit = 0
	}
	orders, err := s.orders.List(domain.SessionID(strings.TrimSpace(sessionID)), limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrder возвращает заказ или ErrOrderNotFound.
func (s *Service) GetOrder(id string) (domain.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Order{}, fmt.Errorf("%w: order id is required", domain.ErrInvalidArgument)
	}
	return s.orders.Get(id)
}

// persist записывает заказ и удаляет корзину сессии. Хранилище с
// CreateAndClearCart делает это одной транзакцией.
func (s *Service) persist(order domain.Order, logger *log.Entry) error {
	if store, ok := s.orders.(domain.CheckoutOrderRepository); ok {
		return store.CreateAndClearCart(order)
	}

	if err := s.orders.Create(order); err != nil {
		return err
	}
	// Заказ уже записан: ошибка удаления корзины не отменяет оформление.
	if err := s.carts.Delete(order.SessionID); err != nil {
		logger.WithError(err).Warn("failed to delete cart after order placement")
	}
	return nil
}

func (s *Service) enqueuePlaced(order domain.Order, logger *log.Entry) {
	if s.outbox == nil {
		return
	}

	payload, err := json.Marshal(kafka.NewOrderPlacedEvent(order))
	if err != nil {
		logger.WithError(err).Warn("failed to encode order.placed event")
		return
	}

	if _, err := s.outbox.Enqueue(domain.OutboxMessage{
		AggregateType: domain.AggregateTypeOrder,
		AggregateID:   order.ID,
		EventType:     domain.EventTypeOrderPlaced,
		Payload:       payload,
		CreatedAt:     order.CreatedAt,
	}); err != nil {
		logger.WithError(err).Warn("failed to enqueue order.placed event")
		return
	}
	s.metrics.RecordOutboxEvent()
}
