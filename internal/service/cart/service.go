// Package cart реализует операции над корзиной сессии. Каждая мутация
// выполняется под замком сессии и возвращает корзину вместе с пересчитанными итогами.
package cart

import (
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/pricing"
	"github.com/vladislavdragonenkov/storefront/internal/sessionlock"
)

const (
	opGet    = "get"
	opAdd    = "add"
	opUpdate = "update"
	opRemove = "remove"
	opClear  = "clear"
	opPromo  = "apply_promo"
)

// View — состояние корзины и расчёт по текущим ценам.
type View struct {
	Cart  domain.Cart
	Quote pricing.Quote
}

// Totals возвращает итоги расчёта.
func (v View) Totals() domain.Totals {
	return v.Quote.Totals
}

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

// WithLocker задаёт общий с оформлением заказов замок сессий.
func WithLocker(locker *sessionlock.Locker) Option {
	return func(s *Service) {
		if locker != nil {
			s.locks = locker
		}
	}
}

// WithClock подменяет источник времени (используется в тестах).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service — хранилище корзин с бизнес-правилами.
type Service struct {
	carts   domain.CartRepository
	catalog domain.ProductCatalog
	promos  domain.PromoCodeRegistry
	engine  *pricing.Engine
	locks   *sessionlock.Locker
	metrics *metrics.ShopMetrics
	logger  *log.Entry
	now     func() time.Time
}

// NewService создаёт сервис корзины.
func NewService(
	carts domain.CartRepository,
	catalog domain.ProductCatalog,
	promos domain.PromoCodeRegistry,
	engine *pricing.Engine,
	options ...Option,
) *Service {
	s := &Service{
		carts:   carts,
		catalog: catalog,
		promos:  promos,
		engine:  engine,
		locks:   sessionlock.New(),
		logger:  log.WithField("component", "cart-service"),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Get возвращает корзину сессии; отсутствующая корзина отдаётся пустой.
func (s *Service) Get(sessionID string) (view View, err error) {
	defer s.record(opGet, &err)

	sid, err := domain.ParseSessionID(sessionID)
	if err != nil {
		return View{}, err
	}

	cart, err := s.load(sid)
	if err != nil {
		return View{}, err
	}
	return s.view(cart)
}

// Add добавляет товар или увеличивает количество существующей позиции.
func (s *Service) Add(sessionID, productID string, quantity int) (view View, err error) {
	defer s.record(opAdd, &err)

	sid, err := domain.ParseSessionID(sessionID)
	if err != nil {
		return View{}, err
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return View{}, domain.ErrProductIDRequired
	}
	if quantity <= 0 {
		return View{}, domain.ErrQuantityInvalid
	}
	if _, err := s.catalog.Get(productID); err != nil {
		return View{}, err
	}

	unlock := s.locks.Lock(sid.String())
	defer unlock()

	cart, err := s.load(sid)
	if err != nil {
		return View{}, err
	}
	if err := cart.Add(productID, quantity, s.now()); err != nil {
		return View{}, err
	}
	return s.commit(cart)
}

// UpdateQuantity задаёт количество позиции; quantity <= 0 удаляет её.
func (s *Service) UpdateQuantity(sessionID, productID string, quantity int) (view View, err error) {
	defer s.record(opUpdate, &err)

	sid, err := domain.ParseSessionID(sessionID)
	if err != nil {
		return View{}, err
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return View{}, domain.ErrProductIDRequired
	}

	unlock := s.locks.Lock(sid.String())
	defer unlock()

	cart, err := s.carts.Get(sid)
	if err != nil {
		return View{}, err
	}
	if err := cart.SetQuantity(productID, quantity, s.now()); err != nil {
		return View{}, err
	}
	return s.commit(cart)
}

// Remove удаляет позицию. Отсутствие позиции или корзины ошибкой не считается.
func (s *Service) Remove(sessionID, productID string) (view View, removed bool, err error) {
	defer s.record(opRemove, &err)

	sid, err := domain.ParseSessionID(sessionID)
	if err != nil {
		return View{}, false, err
	}

	unlock := s.locks.Lock(sid.String())
	defer unlock()

	cart, err := s.load(sid)
	if err != nil {
		return View{}, false, err
	}
	if !cart.Remove(strings.TrimSpace(productID), s.now()) {
		view, err := s.view(cart)
		return view, false, err
	}

	view, err = s.commit(cart)
	if err != nil {
		return View{}, false, err
	}
	return view, true, nil
}

// Clear удаляет корзину вместе с промокодом. Идемпотентна.
func (s *Service) Clear(sessionID string) (view View, err error) {
	defer s.record(opClear, &err)

	sid, err := domain.ParseSessionID(sessionID)
	if err != nil {
		return View{}, err
	}

	unlock := s.locks.Lock(sid.String())
	defer unlock()

	if err := s.carts.Delete(sid); err != nil {
		return View{}, fmt.Errorf("clear cart %s: %w", sid, err)
	}
	return s.view(domain.NewCart(sid))
}

// ApplyPromo привязывает промокод к непустой корзине.
func (s *Service) ApplyPromo(sessionID, code string) (view View, err error) {
	defer s.record(opPromo, &err)

	sid, err := domain.ParseSessionID(sessionID)
	if err != nil {
		return View{}, err
	}

	unlock := s.locks.Lock(sid.String())
	defer unlock()

	cart, err := s.load(sid)
	if err != nil {
		return View{}, err
	}
	if cart.IsEmpty() {
		return View{}, domain.ErrEmptyCart
	}

	promo, err := s.promos.Lookup(code)
	if err != nil {
		if errors.Is(err, domain.ErrPromoCodeNotFound) {
			return View{}, fmt.Errorf("%w: %s", domain.ErrInvalidCode, strings.TrimSpace(code))
		}
		return View{}, fmt.Errorf("lookup promo code: %w", err)
	}

	if err := cart.ApplyPromo(promo.Code, s.now()); err != nil {
		return View{}, err
	}
	view, err = s.commit(cart)
	if err != nil {
		return View{}, err
	}

	s.metrics.RecordPromoApplied(promo.Code)
	s.logger.WithFields(log.Fields{
		"session_id": sid,
		"promo_code": promo.Code,
	}).Debug("promo code applied")
	return view, nil
}

// load возвращает сохранённую корзину или пустую, если её ещё нет.
func (s *Service) load(sid domain.SessionID) (domain.Cart, error) {
	cart, err := s.carts.Get(sid)
	switch {
	case err == nil:
		return cart, nil
	case errors.Is(err, domain.ErrCartNotFound):
		return domain.NewCart(sid), nil
	default:
		return domain.Cart{}, fmt.Errorf("load cart %s: %w", sid, err)
	}
}

// commit пересчитывает корзину и только затем сохраняет её: ошибка расчёта
// не должна оставлять частично применённую мутацию. Пустая корзина удаляется.
func (s *Service) commit(cart domain.Cart) (View, error) {
	view, err := s.view(cart)
	if err != nil {
		return View{}, err
	}

	if cart.IsEmpty() {
		err = s.carts.Delete(cart.SessionID)
	} else {
		err = s.carts.Save(cart)
	}
	if err != nil {
		return View{}, fmt.Errorf("save cart %s: %w", cart.SessionID, err)
	}
	return view, nil
}

func (s *Service) view(cart domain.Cart) (View, error) {
	quote, err := s.engine.Quote(cart)
	if err != nil {
		return View{}, err
	}
	return View{Cart: cart, Quote: quote}, nil
}

func (s *Service) record(operation string, err *error) {
	s.metrics.RecordCartOperation(operation, *err)
	if *err != nil && !domain.IsClientError(*err) {
		s.logger.WithError(*err).WithField("operation", operation).Error("cart operation failed")
	}
}
