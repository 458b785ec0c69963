package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
)

// writeError traduce un error de dominio a status y cuerpo HTTP. Los 5xx se registran con la causa
// completa; al cliente solo llega un mensaje genérico (o el paso abortado).
func writeError(c *fiber.Ctx, err error) error {
	var aborted *domain.TxAbortedError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.As(err, &aborted):
		logServerError(c, err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "TRANSACTION_ABORTED", Message: "transacción abortada en el paso " + aborted.Step})
	case errors.Is(err, domain.ErrConstraintViolation):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONSTRAINT", Message: "restricción del almacén violada"})
	default:
		logServerError(c, err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

func logServerError(c *fiber.Ctx, err error) {
	log := zerolog.Ctx(c.UserContext())
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error en la petición")
}

// paramID lee un parámetro de ruta entero. Cualquier id que parsea llega al caso de uso: 0 o
// negativos simplemente no existen (404).
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, errInvalidID(name)
	}
	return id, nil
}

type errInvalidID string

func (e errInvalidID) Error() string { return string(e) + " debe ser un entero" }

func badID(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: err.Error()})
}
