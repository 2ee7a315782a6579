package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/pricing"
	"github.com/vladislavdragonenkov/storefront/internal/promo"
)

const (
	// StorageDriverMemory хранит каталог, корзины и заказы в памяти процесса.
	StorageDriverMemory = "memory"
	// StorageDriverPostgres хранит данные в PostgreSQL.
	StorageDriverPostgres = "postgres"
)

const envPrefix = "STOREFRONT_"

// Config описывает настройки запуска витрины. Денежные параметры хранятся
// строками, чтобы Config оставался сравнимым значением.
type Config struct {
	GRPCAddr    string
	HTTPAddr    string
	MetricsAddr string

	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool

	KafkaBrokers string
	KafkaTopic   string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	OutboxRetryDelay   time.Duration
	OutboxMaxPending   int

	IdempotencyTTL              time.Duration
	IdempotencyCleanupInterval  time.Duration
	IdempotencyCleanupBatchSize int

	TaxRate         string
	DefaultShipping string
	ShipEmptyCart   bool
	StrictCatalog   bool
	// PromoCodes — JSON-массив, заменяющий стандартный набор промокодов.
	PromoCodes  string
	SeedCatalog bool
}

// DefaultConfig возвращает настройки для локального запуска в памяти.
func DefaultConfig() Config {
	return Config{
		GRPCAddr:                    ":50051",
		HTTPAddr:                    ":8080",
		MetricsAddr:                 ":9090",
		StorageDriver:               StorageDriverMemory,
		PostgresAutoMigrate:         true,
		OutboxPollInterval:          time.Second,
		OutboxBatchSize:             100,
		OutboxMaxAttempts:           3,
		OutboxRetryDelay:            50 * time.Millisecond,
		OutboxMaxPending:            1000,
		IdempotencyTTL:              24 * time.Hour,
		IdempotencyCleanupInterval:  10 * time.Minute,
		IdempotencyCleanupBatchSize: 500,
		TaxRate:                     "0.05",
		DefaultShipping:             "50",
		ShipEmptyCart:               true,
		SeedCatalog:                 true,
	}
}

// LoadConfigFromEnv накладывает переменные STOREFRONT_* на DefaultConfig
// и проверяет результат.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	var errs []error

	readString := func(name string, dst *string) {
		if v, ok := lookupEnv(name); ok {
			*dst = v
		}
	}
	readBool := func(name string, dst *bool) {
		v, ok := lookupEnv(name)
		if !ok {
			return
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
			return
		}
		*dst = parsed
	}
	readInt := func(name string, dst *int) {
		v, ok := lookupEnv(name)
		if !ok {
			return
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
			return
		}
		*dst = parsed
	}
	readDuration := func(name string, dst *time.Duration) {
		v, ok := lookupEnv(name)
		if !ok {
			return
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
			return
		}
		*dst = parsed
	}

	readString("GRPC_ADDR", &cfg.GRPCAddr)
	readString("HTTP_ADDR", &cfg.HTTPAddr)
	readString("METRICS_ADDR", &cfg.MetricsAddr)
	readString("STORAGE_DRIVER", &cfg.StorageDriver)
	readString("POSTGRES_DSN", &cfg.PostgresDSN)
	readBool("POSTGRES_AUTO_MIGRATE", &cfg.PostgresAutoMigrate)
	readString("KAFKA_BROKERS", &cfg.KafkaBrokers)
	readString("KAFKA_TOPIC", &cfg.KafkaTopic)
	readDuration("OUTBOX_POLL_INTERVAL", &cfg.OutboxPollInterval)
	readInt("OUTBOX_BATCH_SIZE", &cfg.OutboxBatchSize)
	readInt("OUTBOX_MAX_ATTEMPTS", &cfg.OutboxMaxAttempts)
	readDuration("OUTBOX_RETRY_DELAY", &cfg.OutboxRetryDelay)
	readInt("OUTBOX_MAX_PENDING", &cfg.OutboxMaxPending)
	readDuration("IDEMPOTENCY_TTL", &cfg.IdempotencyTTL)
	readDuration("IDEMPOTENCY_CLEANUP_INTERVAL", &cfg.IdempotencyCleanupInterval)
	readInt("IDEMPOTENCY_CLEANUP_BATCH_SIZE", &cfg.IdempotencyCleanupBatchSize)
	readString("TAX_RATE", &cfg.TaxRate)
	readString("DEFAULT_SHIPPING", &cfg.DefaultShipping)
	readBool("SHIP_EMPTY_CART", &cfg.ShipEmptyCart)
	readBool("STRICT_CATALOG", &cfg.StrictCatalog)
	readString("PROMO_CODES", &cfg.PromoCodes)
	readBool("SEED_CATALOG", &cfg.SeedCatalog)

	cfg.StorageDriver = strings.ToLower(cfg.StorageDriver)

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, cfg.Validate()
}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Validate проверяет согласованность настроек.
func (c Config) Validate() error {
	var errs []error

	if c.GRPCAddr == "" {
		errs = append(errs, errors.New("grpc addr is required"))
	}
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http addr is required"))
	}
	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			errs = append(errs, errors.New("postgres dsn is required for postgres storage driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported storage driver %q", c.StorageDriver))
	}
	if c.OutboxBatchSize <= 0 {
		errs = append(errs, errors.New("outbox batch size must be positive"))
	}
	if c.OutboxMaxAttempts <= 0 {
		errs = append(errs, errors.New("outbox max attempts must be positive"))
	}
	if c.OutboxPollInterval <= 0 {
		errs = append(errs, errors.New("outbox poll interval must be positive"))
	}
	if c.IdempotencyTTL <= 0 {
		errs = append(errs, errors.New("idempotency ttl must be positive"))
	}
	if _, err := c.PricingRules(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.PromoRegistry(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// PricingRules собирает параметры расчёта из строковых полей.
func (c Config) PricingRules() (pricing.Rules, error) {
	rules := pricing.DefaultRules()

	if c.TaxRate != "" {
		rate, err := decimal.NewFromString(c.TaxRate)
		if err != nil {
			return pricing.Rules{}, fmt.Errorf("%w: tax rate %q", domain.ErrInvalidArgument, c.TaxRate)
		}
		rules.TaxRate = rate
	}
	if c.DefaultShipping != "" {
		shipping, err := decimal.NewFromString(c.DefaultShipping)
		if err != nil {
			return pricing.Rules{}, fmt.Errorf("%w: default shipping %q", domain.ErrInvalidArgument, c.DefaultShipping)
		}
		rules.DefaultShipping = shipping
	}
	rules.ShipEmptyCart = c.ShipEmptyCart
	rules.StrictCatalog = c.StrictCatalog

	if err := rules.Validate(); err != nil {
		return pricing.Rules{}, err
	}
	return rules, nil
}

// PromoRegistry строит реестр промокодов: PromoCodes заменяет стандартный набор.
func (c Config) PromoRegistry() (*promo.Registry, error) {
	codes, err := promo.ParseCodes(c.PromoCodes)
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return promo.NewDefaultRegistry(), nil
	}
	return promo.NewRegistry(codes)
}
