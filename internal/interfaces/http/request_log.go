package http

import (
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-api/pkg/logger"
)

// Middleware registra la cadena global en orden: requestid, RequestLogger, recover, cors.
// recover va dentro del logger para que una petición que entra en pánico también deje su línea
// de acceso (con status 500) y el stack quede correlacionado por request id.
func Middleware(app *fiber.App, log *logger.Logger, corsOrigins string) {
	app.Use(requestid.New())
	app.Use(RequestLogger(log))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			zerolog.Ctx(c.UserContext()).Error().
				Interface("panic", e).
				Bytes("stack", debug.Stack()).
				Str("path", c.Path()).
				Msg("panic en la petición")
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

// RequestLogger registra cada petición y deja un logger con el request id en el contexto de usuario
// (zerolog.Ctx) para que los handlers registren errores correlacionados. Va después de requestid.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)

		reqLog := log.Zerolog().With().Str("request_id", reqID).Logger()
		c.SetUserContext(reqLog.WithContext(c.UserContext()))

		err := c.Next()
		if err != nil {
			// delega en el ErrorHandler para conocer el status final
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		event := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			event = reqLog.Error()
		} else if status >= fiber.StatusBadRequest {
			event = reqLog.Warn()
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("http request")
		return nil
	}
}
