// Package idempotency повторяет сохранённый ответ на запрос с тем же
// Idempotency-Key и чистит просроченные ключи.
package idempotency

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const defaultTTL = 24 * time.Hour

// Response — ответ транспорта в сериализованном виде. Code — HTTP-статус
// или код gRPC, в зависимости от того, кто вызывает Guard.
type Response struct {
	Code int
	Body []byte
}

// Result — ответ вместе с признаком повтора из кэша.
type Result struct {
	Response
	Replayed bool
	// Failed — сохранённый ответ описывает ошибку.
	Failed bool
}

// Handler выполняет запрос и сообщает, успешен ли он.
type Handler func() (resp Response, ok bool)

// Guard оборачивает неидемпотентные операции (оформление заказа).
type Guard struct {
	repo   domain.IdempotencyRepository
	ttl    time.Duration
	logger *log.Entry
}

// NewGuard создаёт Guard. ttl <= 0 означает 24 часа.
func NewGuard(repo domain.IdempotencyRepository, ttl time.Duration, logger *log.Entry) *Guard {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = log.WithField("component", "idempotency-guard")
	}
	return &Guard{repo: repo, ttl: ttl, logger: logger}
}

// HashRequest строит отпечаток запроса: scope и JSON-представление payload.
func HashRequest(scope string, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal idempotency payload: %w", err)
	}

	buf := make([]byte, 0, len(scope)+1+len(data))
	buf = append(buf, scope...)
	buf = append(buf, ':')
	buf = append(buf, data...)
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:]), nil
}

// Execute выполняет handler не более одного раза на ключ. Пустой ключ или
// отсутствие репозитория отключают проверку.
//
// Возвращает ErrIdempotencyHashMismatch, если ключ занят другим запросом,
// и ErrIdempotencyInProgress, если первый запрос ещё не завершён.
func (g *Guard) Execute(scope, key, requestHash string, handler Handler) (Result, error) {
	key = strings.TrimSpace(key)
	if g == nil || g.repo == nil || key == "" {
		resp, ok := handler()
		return Result{Response: resp, Failed: !ok}, nil
	}

	scopedKey := scope + ":" + key
	record, err := g.repo.CreateProcessing(scopedKey, requestHash, time.Now().UTC().Add(g.ttl))
	if err != nil {
		return g.replay(err, record)
	}

	resp, ok := handler()
	if ok {
		err = g.repo.MarkDone(scopedKey, resp.Body, resp.Code)
	} else {
		err = g.repo.MarkFailed(scopedKey, resp.Body, resp.Code)
	}
	if err != nil {
		g.logger.WithError(err).WithField("idempotency_key", scopedKey).Warn("failed to store idempotent response")
	}

	return Result{Response: resp, Failed: !ok}, nil
}

func (g *Guard) replay(createErr error, record domain.IdempotencyRecord) (Result, error) {
	switch {
	case errors.Is(createErr, domain.ErrIdempotencyHashMismatch):
		return Result{}, domain.ErrIdempotencyHashMismatch
	case errors.Is(createErr, domain.ErrIdempotencyKeyAlreadyExists):
		switch record.Status {
		case domain.IdempotencyStatusDone, domain.IdempotencyStatusFailed:
			return Result{
				Response: Response{Code: record.ResponseCode, Body: record.ResponseBody},
				Replayed: true,
				Failed:   record.Status == domain.IdempotencyStatusFailed,
			}, nil
		case domain.IdempotencyStatusProcessing:
			return Result{}, domain.ErrIdempotencyInProgress
		default:
			return Result{}, fmt.Errorf("unknown idempotency record status %q", record.Status)
		}
	default:
		g.logger.WithError(createErr).Warn("failed to create idempotency record")
		return Result{}, fmt.Errorf("initialize idempotency request: %w", createErr)
	}
}
