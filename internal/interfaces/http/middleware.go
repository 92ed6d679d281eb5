package http

import (
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-lotes/internal/application/dto"
	"github.com/jhoicas/facturacion-lotes/pkg/logger"
)

// LoopbackOnly rechaza con 403 las peticiones que no vienen de la propia máquina.
// La API no tiene autenticación: solo la consume la interfaz de escritorio local.
func LoopbackOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := net.ParseIP(c.IP())
		if ip == nil || !ip.IsLoopback() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo se aceptan conexiones locales"})
		}
		return c.Next()
	}
}

// RequestLogger registra método, ruta, estado y duración de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("elapsed", time.Since(start)).
			Msg("http")
		return err
	}
}
