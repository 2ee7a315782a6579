package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// DefaultImageURL подставляется, если у нового товара нет картинки.
const DefaultImageURL = "https://via.placeholder.com/400x300?text=New+Product"

// NewProductInput — данные админского запроса на добавление товара.
type NewProductInput struct {
	Name        string
	UnitPrice   decimal.Decimal
	Category    string
	Description string
	ImageURL    string
}

// Service — чтение каталога и админское добавление товаров.
type Service struct {
	catalog domain.ProductCatalog
	logger  *log.Entry
}

// NewService создаёт сервис каталога.
func NewService(catalog domain.ProductCatalog, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "catalog")
	}
	return &Service{catalog: catalog, logger: logger}
}

// Get возвращает товар или ErrProductNotFound.
func (s *Service) Get(id string) (domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Product{}, domain.ErrProductIDRequired
	}
	return s.catalog.Get(id)
}

// List возвращает товары под фильтр.
func (s *Service) List(filter domain.ProductFilter) ([]domain.Product, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Category = strings.TrimSpace(filter.Category)
	return s.catalog.List(filter)
}

// Add присваивает товару uuid и сохраняет его в каталоге.
func (s *Service) Add(in NewProductInput) (domain.Product, error) {
	product, err := domain.NewProduct(uuid.NewString(), in.Name, in.UnitPrice, in.Category, in.Description)
	if err != nil {
		return domain.Product{}, err
	}
	product.ImageURL = strings.TrimSpace(in.ImageURL)
	if product.ImageURL == "" {
		product.ImageURL = DefaultImageURL
	}

	if err := s.catalog.Add(product); err != nil {
		return domain.Product{}, fmt.Errorf("add product: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"product_id": product.ID,
		"category":   product.Category,
	}).Info("product added")
	return product, nil
}
