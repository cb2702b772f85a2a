package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/coffee-stock-api/internal/application/dto"
	"github.com/jhoicas/coffee-stock-api/internal/domain"
	"github.com/jhoicas/coffee-stock-api/pkg/validator"
)

// Mensajes de éxito de la API.
const (
	msgQuerySucceeded    = "query succeeded"
	msgCreated           = "created"
	msgStockInSucceeded  = "stock-in succeeded"
	msgStockOutSucceeded = "stock-out succeeded"
)

func success(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.APIResponse{Result: true, Message: message, Data: data})
}

func failure(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Result: false, Code: code, Message: message})
}

// writeError traduce errores de dominio a status HTTP. El resto es 500 sin exponer detalles internos.
func writeError(c *fiber.Ctx, err error) error {
	var (
		notFound     *domain.NotFoundError
		insufficient *domain.InsufficientStockError
		validation   *domain.ValidationError
	)
	switch {
	case errors.As(err, &validation):
		return failure(c, fiber.StatusBadRequest, "VALIDATION", validation.Message)
	case errors.As(err, &notFound), errors.Is(err, domain.ErrNotFound):
		return failure(c, fiber.StatusNotFound, "NOT_FOUND", domain.ErrNotFound.Error())
	case errors.As(err, &insufficient):
		return failure(c, fiber.StatusBadRequest, "INSUFFICIENT_STOCK", insufficient.Error())
	case errors.Is(err, domain.ErrValidation):
		return failure(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return failure(c, fiber.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}

// productIDParam lee :id como entero positivo.
func productIDParam(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidProductID(c *fiber.Ctx) error {
	return failure(c, fiber.StatusBadRequest, "INVALID_ID", "invalid product id")
}

// parseQuery decodifica y valida los parámetros de query; si falla ya escribió la respuesta 400.
func parseQuery(c *fiber.Ctx, out any) (bool, error) {
	if err := c.QueryParser(out); err != nil {
		return false, failure(c, fiber.StatusBadRequest, "INVALID_QUERY", "invalid query parameters")
	}
	if errs := validator.ValidateStruct(out); len(errs) > 0 {
		return false, failure(c, fiber.StatusBadRequest, "VALIDATION", errs[0].Message())
	}
	return true, nil
}

// parseBody decodifica y valida el cuerpo; si falla ya escribió la respuesta 400.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, failure(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	if errs := validator.ValidateStruct(out); len(errs) > 0 {
		return false, failure(c, fiber.StatusBadRequest, "VALIDATION", errs[0].Message())
	}
	return true, nil
}
