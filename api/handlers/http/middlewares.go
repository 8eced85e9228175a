package http

import (
	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/jwt"
	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/logger"

	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/context"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func newAuthMiddleware(secret []byte) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: secret},
		Claims:      &jwt.UserClaims{},
		TokenLookup: "header:Authorization",
		SuccessHandler: func(ctx *fiber.Ctx) error {
			userClaims := userClaims(ctx)
			if userClaims == nil || userClaims.UserID == "" {
				return fiber.ErrUnauthorized
			}

			userCtx := context.NewAppContext(context.WithSubject(ctx.UserContext(), userClaims.UserID))

			contextLogger := logger.GetGlobalLogger()
			userCtx = contextLogger.SetInContext(userCtx, contextLogger.FromContext(userCtx))
			ctx.SetUserContext(userCtx)

			return ctx.Next()
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		},
		AuthScheme: "Bearer",
	})
}

func setUserContext(c *fiber.Ctx) error {
	traceID := ""
	if tid, ok := c.Locals("traceID").(string); ok {
		traceID = tid
	}

	userCtx := context.NewAppContextWithTracing(c.UserContext(), traceID)

	contextLogger := logger.GetGlobalLogger()
	userCtx = contextLogger.SetInContext(userCtx, contextLogger.FromContext(userCtx))

	c.SetUserContext(userCtx)
	return c.Next()
}

func TraceMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := c.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.New().String()
		}
		c.Set("X-Trace-ID", traceID)

		c.Locals("traceID", traceID)

		return c.Next()
	}
}
