package grpcsvc

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const internalErrorMessage = "internal error"

// statusCode классифицирует доменную ошибку.
func statusCode(err error) codes.Code {
	switch {
	case err == nil:
		return codes.OK
	case errors.Is(err, domain.ErrInvalidArgument):
		return codes.InvalidArgument
	case errors.Is(err, domain.ErrNotFound):
		return codes.NotFound
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrInvalidCustomer):
		return codes.FailedPrecondition
	case errors.Is(err, domain.ErrProductAlreadyExists),
		errors.Is(err, domain.ErrIdempotencyHashMismatch):
		return codes.AlreadyExists
	case errors.Is(err, domain.ErrIdempotencyInProgress):
		return codes.Aborted
	default:
		return codes.Internal
	}
}

// toStatus превращает ошибку в gRPC-статус. Детали внутренних ошибок
// остаются в логах, клиент видит только общий текст.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	code := statusCode(err)
	if code == codes.Internal {
		return status.Error(codes.Internal, internalErrorMessage)
	}
	return status.Error(code, err.Error())
}
