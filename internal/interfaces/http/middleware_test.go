package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/facturacion-lotes/internal/interfaces/http"
	"github.com/jhoicas/facturacion-lotes/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildLoopbackApp app mínima con LoopbackOnly. app.Test no permite fijar la IP remota,
// así que la IP del cliente se toma de X-Real-IP.
func buildLoopbackApp() *fiber.App {
	app := fiber.New(fiber.Config{ProxyHeader: "X-Real-IP"})
	app.Use(apphttp.LoopbackOnly(), apphttp.RequestLogger(logger.Nop()))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func doFrom(t *testing.T, app *fiber.App, ip string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if ip != "" {
		req.Header.Set("X-Real-IP", ip)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests LoopbackOnly
// ──────────────────────────────────────────────────────────────────────────────

func TestLoopbackOnly_AceptaConexionesLocales(t *testing.T) {
	app := buildLoopbackApp()
	for _, ip := range []string{"127.0.0.1", "::1"} {
		resp := doFrom(t, app, ip)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode, "desde %s", ip)
		assert.Equal(t, "pong", string(body))
	}
}

func TestLoopbackOnly_RechazaOtrasIPs(t *testing.T) {
	app := buildLoopbackApp()
	for _, ip := range []string{"192.168.1.20", "10.0.0.5", "no-es-ip"} {
		resp := doFrom(t, app, ip)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "desde %s", ip)
		assert.Contains(t, string(body), "FORBIDDEN")
	}
}
