package domain

// ProductCatalog описывает каталог товаров. Для движка цен нужен только Get;
// Add используется админским сценарием.
type ProductCatalog interface {
	// Get возвращает товар или ErrProductNotFound.
	Get(id string) (Product, error)
	// List возвращает товары, подходящие под фильтр, в порядке добавления.
	List(filter ProductFilter) ([]Product, error)
	// Add сохраняет новый товар; ErrProductAlreadyExists при дубликате ID.
	Add(product Product) error
}

// CartRepository хранит по одной корзине на сессию.
type CartRepository interface {
	// Get возвращает корзину или ErrCartNotFound.
	Get(sessionID SessionID) (Cart, error)
	// Save полностью перезаписывает корзину сессии.
	Save(cart Cart) error
	// Delete удаляет корзину; отсутствие корзины ошибкой не считается.
	Delete(sessionID SessionID) error
}

// OrderRepository — журнал заказов, только добавление.
type OrderRepository interface {
	// Create сохраняет новый заказ. Возвращает ErrOrderAlreadyExists при повторе ID.
	Create(order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(id string) (Order, error)
	// List возвращает заказы в порядке оформления; пустой sessionID — все заказы.
	// limit > 0 оставляет limit самых свежих, limit <= 0 — без ограничения.
	List(sessionID SessionID, limit int) ([]Order, error)
}

// CheckoutOrderRepository умеет атомарно записать заказ и удалить корзину
// его сессии, чтобы повтор оформления не нашёл уже оформленную корзину.
type CheckoutOrderRepository interface {
	OrderRepository
	// CreateAndClearCart сохраняет заказ и удаляет корзину order.SessionID
	// в одной транзакции.
	CreateAndClearCart(order Order) error
}

// PromoCodeRegistry — статический реестр промокодов.
type PromoCodeRegistry interface {
	// Lookup нормализует код и возвращает правило или ErrPromoCodeNotFound.
	Lookup(code string) (PromoCode, error)
	// List возвращает все коды, отсортированные по имени.
	List() []PromoCode
}
