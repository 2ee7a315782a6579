package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument — некорректный или отсутствующий входной параметр.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — базовая ошибка отсутствующей сущности.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart — операция требует непустую корзину.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidCode — промокод не найден в реестре.
	ErrInvalidCode = errors.New("invalid promo code")
	// ErrInvalidCustomer — не заполнены обязательные контактные данные покупателя.
	ErrInvalidCustomer = errors.New("customer information is required")

	// ErrProductNotFound возвращается, если товара нет в каталоге.
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	// ErrCartNotFound возвращается, если у сессии нет корзины.
	ErrCartNotFound = fmt.Errorf("cart %w", ErrNotFound)
	// ErrCartItemNotFound возвращается, если в корзине нет позиции с таким товаром.
	ErrCartItemNotFound = fmt.Errorf("item %w in cart", ErrNotFound)
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = fmt.Errorf("order %w", ErrNotFound)
	// ErrPromoCodeNotFound возвращается реестром промокодов.
	ErrPromoCodeNotFound = fmt.Errorf("promo code %w", ErrNotFound)

	// ErrSessionRequired — пустой идентификатор сессии.
	ErrSessionRequired = fmt.Errorf("%w: session id is required", ErrInvalidArgument)
	// ErrProductIDRequired — пустой идентификатор товара.
	ErrProductIDRequired = fmt.Errorf("%w: product id is required", ErrInvalidArgument)
	// ErrQuantityInvalid — количество должно быть положительным.
	ErrQuantityInvalid = fmt.Errorf("%w: quantity must be greater than zero", ErrInvalidArgument)
	// ErrQuantityTooLarge возвращается, если количество позиции превысит MaxQuantity.
	ErrQuantityTooLarge = fmt.Errorf("%w: quantity is too large", ErrInvalidArgument)
	// ErrProductNameRequired — у товара нет названия.
	ErrProductNameRequired = fmt.Errorf("%w: product name is required", ErrInvalidArgument)
	// ErrProductCategoryRequired — у товара нет категории.
	ErrProductCategoryRequired = fmt.Errorf("%w: product category is required", ErrInvalidArgument)
	// ErrProductPriceInvalid — цена товара не может быть отрицательной.
	ErrProductPriceInvalid = fmt.Errorf("%w: product price must be non-negative", ErrInvalidArgument)
	// ErrProductAlreadyExists — товар с таким ID уже есть в каталоге.
	ErrProductAlreadyExists = errors.New("product already exists")

	// ErrOrderAlreadyExists — заказ с таким ID уже сохранён.
	ErrOrderAlreadyExists = errors.New("order already exists")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")

	// ErrIdempotencyKeyRequired — пустой idempotency-key.
	ErrIdempotencyKeyRequired = errors.New("idempotency key is required")
	// ErrIdempotencyRequestHashRequired — пустой hash запроса.
	ErrIdempotencyRequestHashRequired = errors.New("idempotency request hash is required")
	// ErrIdempotencyKeyNotFound — ключ не найден.
	ErrIdempotencyKeyNotFound = errors.New("idempotency key not found")
	// ErrIdempotencyKeyAlreadyExists — ключ уже использован с тем же запросом.
	ErrIdempotencyKeyAlreadyExists = errors.New("idempotency key already exists")
	// ErrIdempotencyHashMismatch — ключ уже использован с другим запросом.
	ErrIdempotencyHashMismatch = errors.New("idempotency key reused with different request")
	// ErrIdempotencyInProgress — запрос с тем же ключом ещё выполняется.
	ErrIdempotencyInProgress = errors.New("request with the same idempotency key is already processing")
)

// IsNotFound проверяет, относится ли ошибка к семейству "не найдено".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsIdempotencyConflict проверяет, что ключ идемпотентности уже занят.
func IsIdempotencyConflict(err error) bool {
	return errors.Is(err, ErrIdempotencyKeyAlreadyExists) || errors.Is(err, ErrIdempotencyHashMismatch)
}

// IsClientError сообщает, что ошибка вызвана входными данными или состоянием
// корзины, а не сбоем сервиса.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrInvalidCode) ||
		errors.Is(err, ErrInvalidCustomer)
}
