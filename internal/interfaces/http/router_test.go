package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/analytics"
	"github.com/jhoicas/Kardex-api/internal/application/auth"
	"github.com/jhoicas/Kardex-api/internal/application/export"
	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/application/report"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Kardex-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Kardex-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test de integración de la API completa: login, CRUD de productos, registro
// de movimientos con la política de auto-eliminación y estadísticas, sobre un
// Store real respaldado por un adaptador que descarta escrituras.
// ──────────────────────────────────────────────────────────────────────────────

type discardStorage struct{}

func (discardStorage) LoadProducts(_ context.Context) ([]*entity.Product, error)   { return nil, nil }
func (discardStorage) SaveProducts(_ context.Context, _ []*entity.Product) error   { return nil }
func (discardStorage) LoadMovements(_ context.Context) ([]*entity.Movement, error) { return nil, nil }
func (discardStorage) SaveMovements(_ context.Context, _ []*entity.Movement) error { return nil }

func buildFullApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore(discardStorage{})
	require.NoError(t, store.Load(context.Background()))

	productRepo := memory.NewProductRepository(store)
	movementRepo := memory.NewMovementRepository(store)
	statsRepo := memory.NewStatsRepository(store)
	txRunner := memory.NewTxRunner(store)

	users, err := auth.SeedUsers([]auth.Account{
		{Email: "admin@kardex.local", Password: "admin123", Role: entity.RoleAdmin},
		{Email: "op@kardex.local", Password: "op123", Role: entity.RoleOperador},
	})
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:  usecase.NewProductUseCase(productRepo, txRunner),
		MovementUC: usecase.NewMovementUseCase(movementRepo, productRepo),
		RegisterMovement: inventory.NewRegisterMovementUseCase(
			txRunner,
			inventory.Policy{AutoDeleteOnZero: true},
		),
		StatsUC:   analytics.NewStatsUseCase(statsRepo),
		ExportUC:  export.NewCSVUseCase(productRepo, movementRepo),
		ReportUC:  report.NewPDFUseCase("kardex-pro", productRepo, statsRepo, infrapdf.NewMarotoReportGenerator()),
		AuthUC:    auth.NewAuthUseCase(users, testJWT()),
		JWTSecret: testJWTSecret,
	})
	return app
}

func testJWT() auth.JWTConfig {
	return auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp := do(t, app, http.MethodPost, "/api/auth/login", "",
		fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "el login debe funcionar")

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func do(t *testing.T, app *fiber.App, method, path, token, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestAPI_RutasProtegidasSinToken(t *testing.T) {
	app := buildFullApp(t)
	for _, path := range []string{"/api/products/", "/api/movements/", "/api/stats"} {
		resp := do(t, app, http.MethodGet, path, "", "")
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestAPI_FlujoCompletoDeInventario(t *testing.T) {
	app := buildFullApp(t)
	token := login(t, app, "op@kardex.local", "op123")

	// Crear un producto con stock inicial.
	resp := do(t, app, http.MethodPost, "/api/products/", token,
		`{"name":"Monitor 24\"","category":"cómputo","quantity":10}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	}
	decode(t, resp, &created)
	assert.Equal(t, 10, created.Quantity)

	// Venta parcial: 10 - 4 = 6.
	resp = do(t, app, http.MethodPost, "/api/movements/", token,
		fmt.Sprintf(`{"product_id":%q,"type":"sale","quantity":4}`, created.ID))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, app, http.MethodGet, "/api/products/"+created.ID, token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched struct {
		Quantity int `json:"quantity"`
	}
	decode(t, resp, &fetched)
	assert.Equal(t, 6, fetched.Quantity)

	// Venta que agota el stock: el producto desaparece (política activa).
	resp = do(t, app, http.MethodPost, "/api/movements/", token,
		fmt.Sprintf(`{"product_id":%q,"type":"sale","quantity":6}`, created.ID))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, app, http.MethodGet, "/api/products/"+created.ID, token, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode,
		"la salida que deja el stock en cero elimina el producto")

	// El log conserva los dos movimientos con el texto de respaldo.
	resp = do(t, app, http.MethodGet, "/api/movements/", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var movements struct {
		Total int `json:"total"`
		Items []struct {
			ProductName string `json:"product_name"`
		} `json:"items"`
	}
	decode(t, resp, &movements)
	assert.Equal(t, 2, movements.Total)
	assert.Equal(t, usecase.DeletedProductFallback, movements.Items[0].ProductName)
}

func TestAPI_MovimientoInvalidoRetorna400(t *testing.T) {
	app := buildFullApp(t)
	token := login(t, app, "op@kardex.local", "op123")

	resp := do(t, app, http.MethodPost, "/api/movements/", token,
		`{"product_id":"p1","type":"transfer","quantity":1}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_SoloAdminElimina(t *testing.T) {
	app := buildFullApp(t)
	opToken := login(t, app, "op@kardex.local", "op123")
	adminToken := login(t, app, "admin@kardex.local", "admin123")

	resp := do(t, app, http.MethodPost, "/api/products/", opToken,
		`{"name":"Teclado","category":"cómputo"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decode(t, resp, &created)

	resp = do(t, app, http.MethodDelete, "/api/products/"+created.ID, opToken, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "el operador no puede eliminar")

	resp = do(t, app, http.MethodDelete, "/api/products/"+created.ID, adminToken, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAPI_Stats(t *testing.T) {
	app := buildFullApp(t)
	token := login(t, app, "op@kardex.local", "op123")

	resp := do(t, app, http.MethodPost, "/api/products/", token,
		`{"name":"Mouse","category":"cómputo","quantity":3,"min_stock":5}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, app, http.MethodGet, "/api/stats", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats struct {
		TotalProducts int `json:"total_products"`
		TotalStock    int `json:"total_stock"`
		LowStock      int `json:"low_stock"`
	}
	decode(t, resp, &stats)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 3, stats.TotalStock)
	assert.Equal(t, 1, stats.LowStock, "3 unidades con umbral 5 es stock bajo")
}

func TestAPI_ExportCSV(t *testing.T) {
	app := buildFullApp(t)
	token := login(t, app, "op@kardex.local", "op123")

	resp := do(t, app, http.MethodGet, "/api/export/products.csv", token, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "id,name,category")
}
