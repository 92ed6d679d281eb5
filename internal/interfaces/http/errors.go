package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-lotes/internal/application/dto"
	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/pkg/logger"
)

// OutOfStockResponse cuerpo de 409 cuando no alcanza el stock.
type OutOfStockResponse struct {
	dto.ErrorResponse
	Requested int `json:"requested"`
	Available int `json:"available"`
}

// respondError traduce errores de dominio a respuestas HTTP.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var (
		verr  *domain.ValidationError
		stock *domain.OutOfStockError
		cmod  *domain.ConcurrentModificationError
	)
	switch {
	case errors.As(err, &verr), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.As(err, &stock):
		return c.Status(fiber.StatusConflict).JSON(OutOfStockResponse{
			ErrorResponse: dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: stock.Error()},
			Requested:     stock.Requested,
			Available:     stock.Available,
		})
	case errors.As(err, &cmod):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENT_MODIFICATION", Message: cmod.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "LINE_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrCorruptData):
		log.Error().Err(err).Str("path", c.Path()).Msg("datos corruptos")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "CORRUPT_DATA", Message: err.Error()})
	case errors.Is(err, domain.ErrStorage):
		log.Error().Err(err).Str("path", c.Path()).Msg("error de almacenamiento")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "almacenamiento no disponible"})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
