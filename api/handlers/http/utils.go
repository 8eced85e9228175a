package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	jwt2 "github.com/golang-jwt/jwt/v5"
	"gitlab.apk-group.net/siem/backend/qualys-client/api/service"
	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/domain"
	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/jwt"
	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/logger"
)

func userClaims(ctx *fiber.Ctx) *jwt.UserClaims {
	if u := ctx.Locals("user"); u != nil {
		if token, ok := u.(*jwt2.Token); ok {
			if userClaims, ok := token.Claims.(*jwt.UserClaims); ok {
				return userClaims
			}
		}
	}

	return nil
}

type ServiceGetter[T any] func(context.Context) T

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SuccessResponse represents a standardized success response
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(SuccessResponse{Success: true, Data: data})
}

// statusFor maps service and API errors to HTTP status codes.
func statusFor(err error) int {
	var (
		invalidState *domain.InvalidStateError
		notReady     *domain.NotReadyError
		notFound     *domain.NotFoundError
		apiErr       *domain.APIError
		malformed    *domain.MalformedResponseError
		transport    *domain.TransportError
	)

	switch {
	case errors.As(err, &invalidState), errors.As(err, &notReady):
		return fiber.StatusConflict
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, service.ErrMapReportScope):
		return fiber.StatusBadRequest
	case errors.As(err, &apiErr), errors.As(err, &malformed), errors.As(err, &transport):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func handleError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	fields := map[string]interface{}{
		"path":   c.Path(),
		"status": status,
		"error":  err.Error(),
	}
	if status >= fiber.StatusInternalServerError {
		logger.ErrorContextWithFields(c.UserContext(), "Request failed", fields)
	} else {
		logger.WarnContextWithFields(c.UserContext(), "Request rejected", fields)
	}

	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Error:   err.Error(),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Success: false,
		Error:   msg,
	})
}
