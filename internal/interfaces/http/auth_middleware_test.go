package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/sanalas/distripos-api/internal/interfaces/http"
	pkgjwt "github.com/sanalas/distripos-api/pkg/jwt"
)

const (
	mwSecret = "secreto-de-pruebas"
	mwUserID = "11111111-1111-1111-1111-111111111111"
	mwIssuer = "distripos-test"
)

// rbacApp monta una app mínima con la misma topología de grupos que el router
// real: inventario para admin/bodeguero, ventas y caja para admin/cajero.
func rbacApp() *fiber.App {
	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

	api := app.Group("/api", apphttp.AuthMiddleware(mwSecret))
	api.Post("/inventory/movements", apphttp.RequireRole("admin", "bodeguero"), ok)
	api.Post("/sales", apphttp.RequireRole("admin", "cajero"), ok)
	api.Post("/cash/close", apphttp.RequireRole("admin", "cajero"), ok)
	api.Post("/warehouses", apphttp.RequireRole("admin"), ok)
	api.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
	})
	return app
}

func bearerFor(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(mwSecret, mwUserID, role, mwIssuer, 15)
	require.NoError(t, err)
	return "Bearer " + tok
}

func hit(t *testing.T, app *fiber.App, method, path, authorization string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// La matriz de acceso por rol sobre cada grupo de rutas.
func TestRequireRoleMatriz(t *testing.T) {
	app := rbacApp()

	cases := []struct {
		name string
		role string
		path string
		want int
	}{
		{"admin registra movimiento", "admin", "/api/inventory/movements", fiber.StatusOK},
		{"bodeguero registra movimiento", "bodeguero", "/api/inventory/movements", fiber.StatusOK},
		{"cajero no toca inventario", "cajero", "/api/inventory/movements", fiber.StatusForbidden},
		{"cajero vende", "cajero", "/api/sales", fiber.StatusOK},
		{"bodeguero no vende", "bodeguero", "/api/sales", fiber.StatusForbidden},
		{"cajero cierra caja", "cajero", "/api/cash/close", fiber.StatusOK},
		{"bodeguero no cierra caja", "bodeguero", "/api/cash/close", fiber.StatusForbidden},
		{"cajero no crea bodegas", "cajero", "/api/warehouses", fiber.StatusForbidden},
		{"admin crea bodegas", "admin", "/api/warehouses", fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := hit(t, app, fiber.MethodPost, tc.path, bearerFor(t, tc.role))
			defer resp.Body.Close()
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestRequireRoleSinRol(t *testing.T) {
	app := rbacApp()

	// Un token válido pero sin claim de rol no pasa de 401.
	resp := hit(t, app, fiber.MethodPost, "/api/sales", bearerFor(t, ""))
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRechazos(t *testing.T) {
	app := rbacApp()

	cases := []struct {
		name          string
		authorization string
	}{
		{"sin header", ""},
		{"esquema incorrecto", "Basic abc123"},
		{"bearer vacío", "Bearer "},
		{"token corrupto", "Bearer no.es.un.jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := hit(t, app, fiber.MethodGet, "/api/me", tc.authorization)
			defer resp.Body.Close()
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestAuthMiddlewareTokenExpirado(t *testing.T) {
	app := rbacApp()

	tok, err := pkgjwt.Generate(mwSecret, mwUserID, "admin", mwIssuer, -1)
	require.NoError(t, err)
	resp := hit(t, app, fiber.MethodGet, "/api/me", "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareOtroSecret(t *testing.T) {
	app := rbacApp()

	tok, err := pkgjwt.Generate("otro-secret-distinto", mwUserID, "admin", mwIssuer, 15)
	require.NoError(t, err)
	resp := hit(t, app, fiber.MethodGet, "/api/me", "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewarePropagaClaims(t *testing.T) {
	app := rbacApp()

	resp := hit(t, app, fiber.MethodGet, "/api/me", bearerFor(t, "cajero"))
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, mwUserID, body["user_id"])
	assert.Equal(t, "cajero", body["role"])
}

func TestJWTGenerateParse(t *testing.T) {
	tok, err := pkgjwt.Generate(mwSecret, mwUserID, "bodeguero", mwIssuer, 15)
	require.NoError(t, err)

	userID, role, err := pkgjwt.Parse(mwSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, mwUserID, userID)
	assert.Equal(t, "bodeguero", role)
}
