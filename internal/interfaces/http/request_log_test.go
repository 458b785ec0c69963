package http_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/catalog-api/internal/interfaces/http"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		out = append(out, m)
	}
	return out
}

func TestMiddleware_PanicoDejaLineaDeAcceso(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Output: &buf})

	app := fiber.New()
	apphttp.Middleware(app, log, "*")
	app.Get("/boom", func(*fiber.Ctx) error { panic("boom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var access, panicked map[string]any
	for _, l := range logLines(t, &buf) {
		switch l["message"] {
		case "http request":
			access = l
		case "panic en la petición":
			panicked = l
		}
	}
	require.NotNil(t, access, "la petición que entra en pánico igual se registra")
	assert.EqualValues(t, http.StatusInternalServerError, access["status"])
	assert.Equal(t, "error", access["level"])
	assert.NotEmpty(t, access["request_id"])

	require.NotNil(t, panicked)
	assert.Equal(t, "boom", panicked["panic"])
	assert.Equal(t, access["request_id"], panicked["request_id"])
}

func TestMiddleware_PeticionNormal(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Output: &buf})

	app := fiber.New()
	apphttp.Middleware(app, log, "*")
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	lines := logLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "info", lines[0]["level"])
	assert.EqualValues(t, http.StatusNoContent, lines[0]["status"])
}
