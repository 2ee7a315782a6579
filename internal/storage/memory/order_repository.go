package memory

import (
	"slices"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// orderRepositoryInMemory — журнал заказов в памяти, только добавление.
type orderRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Order
	// order хранит идентификаторы в порядке оформления.
	order []string
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[string]domain.Order),
	}
}

// Create сохраняет новый заказ, если ID ещё не занят.
func (r *orderRepositoryInMemory) Create(order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[order.ID]; exists {
		return domain.ErrOrderAlreadyExists
	}
	// Сохраняем копию, чтобы избежать непредсказуемых мутаций извне.
	r.items[order.ID] = order.Clone()
	r.order = append(r.order, order.ID)
	return nil
}

// Get возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepositoryInMemory) Get(id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order.Clone(), nil
}

// List возвращает заказы в порядке оформления. При limit > 0 остаются
// limit самых свежих заказов.
func (r *orderRepositoryInMemory) List(sessionID domain.SessionID, limit int) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		order := r.items[r.order[i]]
		if sessionID != "" && order.SessionID != sessionID {
			continue
		}
		result = append(result, order.Clone())
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	slices.Reverse(result)

	return result, nil
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
