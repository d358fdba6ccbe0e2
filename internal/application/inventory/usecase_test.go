package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del reconciliador: registrar un movimiento aplica el efecto con tope
// en cero sobre el producto, ejecuta la política de auto-eliminación y agrega
// la entrada al log, todo de forma atómica contra un Store real respaldado
// por un adaptador de persistencia falso.
// ──────────────────────────────────────────────────────────────────────────────

// fakeStorage adaptador en memoria para tests. failSaves simula un backend
// caído para verificar el rollback.
type fakeStorage struct {
	products  []*entity.Product
	movements []*entity.Movement
	failSaves bool
}

var errBackendCaido = errors.New("backend caído")

func (f *fakeStorage) LoadProducts(_ context.Context) ([]*entity.Product, error) {
	return f.products, nil
}

func (f *fakeStorage) SaveProducts(_ context.Context, products []*entity.Product) error {
	if f.failSaves {
		return errBackendCaido
	}
	f.products = products
	return nil
}

func (f *fakeStorage) LoadMovements(_ context.Context) ([]*entity.Movement, error) {
	return f.movements, nil
}

func (f *fakeStorage) SaveMovements(_ context.Context, movements []*entity.Movement) error {
	if f.failSaves {
		return errBackendCaido
	}
	f.movements = movements
	return nil
}

// newTestKardex monta el caso de uso sobre un Store cargado con los
// productos dados.
func newTestKardex(t *testing.T, policy inventory.Policy, products ...*entity.Product) (*inventory.RegisterMovementUseCase, *memory.Store, *fakeStorage) {
	t.Helper()
	storage := &fakeStorage{products: products}
	store := memory.NewStore(storage)
	require.NoError(t, store.Load(context.Background()))
	uc := inventory.NewRegisterMovementUseCase(memory.NewTxRunner(store), policy)
	return uc, store, storage
}

func testProduct(id string, quantity int) *entity.Product {
	return &entity.Product{
		ID:           id,
		Name:         "Tornillo M8",
		Category:     "ferretería",
		Quantity:     quantity,
		MinStock:     entity.DefaultMinStock,
		LastModified: time.Now().Add(-time.Hour),
	}
}

func TestRegisterMovement_EntradaSumaStock(t *testing.T) {
	uc, store, _ := newTestKardex(t, inventory.Policy{AutoDeleteOnZero: true}, testProduct("p1", 10))

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID: "p1",
		Type:      entity.ReasonPurchase,
		Quantity:  5,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, mov.ID)
	assert.Equal(t, entity.PolarityIncrease, mov.Polarity)

	p := mustGetProduct(t, store, "p1")
	assert.Equal(t, 15, p.Quantity)
}

func TestRegisterMovement_SalidaRestaStock(t *testing.T) {
	uc, store, _ := newTestKardex(t, inventory.Policy{AutoDeleteOnZero: true}, testProduct("p1", 10))

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID: "p1",
		Type:      entity.ReasonSale,
		Quantity:  4,
	})
	require.NoError(t, err)

	p := mustGetProduct(t, store, "p1")
	assert.Equal(t, 6, p.Quantity)
	assert.WithinDuration(t, time.Now(), p.LastModified, time.Minute,
		"el movimiento debe refrescar LastModified")
}

// TestRegisterMovement_SalidaExactaEliminaProducto: una salida que deja la
// cantidad exactamente en cero elimina el producto cuando la política de
// auto-eliminación está activa. El movimiento sobrevive como huérfano.
func TestRegisterMovement_SalidaExactaEliminaProducto(t *testing.T) {
	uc, store, _ := newTestKardex(t, inventory.Policy{AutoDeleteOnZero: true}, testProduct("p1", 10))

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID: "p1",
		Type:      entity.ReasonSale,
		Quantity:  10,
	})
	require.NoError(t, err)

	assertProductGone(t, store, "p1")
	assertMovementLogged(t, store, mov.ID)
}

// TestRegisterMovement_SalidaExcedidaTopaYElimina: la salida que excede el
// stock topa en cero, y cero topado también dispara la auto-eliminación.
func TestRegisterMovement_SalidaExcedidaTopaYElimina(t *testing.T) {
	uc, store, _ := newTestKardex(t, inventory.Policy{AutoDeleteOnZero: true}, testProduct("p1", 5))

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID: "p1",
		Type:      "out", // vocabulario legado, resuelve a ajuste de salida
		Quantity:  8,
	})
	require.NoError(t, err)

	assertProductGone(t, store, "p1")
}

// TestRegisterMovement_PoliticaApagadaConservaEnCero: con la política
// desactivada el producto sobrevive con cantidad cero.
func TestRegisterMovement_PoliticaApagadaConservaEnCero(t *testing.T) {
	uc, store, _ := newTestKardex(t, inventory.Policy{AutoDeleteOnZero: false}, testProduct("p1", 5))

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID: "p1",
		Type:      entity.ReasonSale,
		Quantity:  8,
	})
	require.NoError(t, err)

	p := mustGetProduct(t, store, "p1")
	assert.Equal(t, 0, p.Quantity, "sin auto-eliminación, el producto queda en cero")
	assert.True(t, p.IsOutOfStock())
}

// TestRegisterMovement_EntradaHuerfana: un movimiento contra un producto
// inexistente se registra igual para auditoría, sin efecto y sin error.
func TestRegisterMovement_EntradaHuerfana(t *testing.T) {
	uc, store, _ := newTestKardex(t, inventory.Policy{AutoDeleteOnZero: true})

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID: "no-existe",
		Type:      entity.ReasonSale,
		Quantity:  3,
	})
	require.NoError(t, err, "el movimiento huérfano no es un error")
	assertMovementLogged(t, store, mov.ID)
}

func TestRegisterMovement_PrecioTotalDerivado(t *testing.T) {
	uc, _, _ := newTestKardex(t, inventory.Policy{AutoDeleteOnZero: true}, testProduct("p1", 10))

	unitPrice := int64(2550) // 25.50 en centavos
	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID: "p1",
		Type:      entity.ReasonSale,
		Quantity:  3,
		UnitPrice: &unitPrice,
	})
	require.NoError(t, err)
	require.NotNil(t, mov.TotalPrice)
	assert.Equal(t, int64(7650), *mov.TotalPrice)
}

func TestRegisterMovement_ValidacionesSinEfecto(t *testing.T) {
	negativo := int64(-100)
	cases := []struct {
		name  string
		input inventory.MovementInputDTO
	}{
		{"sin producto", inventory.MovementInputDTO{Type: entity.ReasonSale, Quantity: 1}},
		{"cantidad cero", inventory.MovementInputDTO{ProductID: "p1", Type: entity.ReasonSale, Quantity: 0}},
		{"cantidad negativa", inventory.MovementInputDTO{ProductID: "p1", Type: entity.ReasonSale, Quantity: -2}},
		{"tipo desconocido", inventory.MovementInputDTO{ProductID: "p1", Type: "transfer", Quantity: 1}},
		{"polaridad contradictoria", inventory.MovementInputDTO{ProductID: "p1", Type: entity.ReasonSale, Polarity: entity.PolarityIncrease, Quantity: 1}},
		{"ajuste sin polaridad", inventory.MovementInputDTO{ProductID: "p1", Type: entity.ReasonAdjustment, Quantity: 1}},
		{"precio negativo", inventory.MovementInputDTO{ProductID: "p1", Type: entity.ReasonSale, Quantity: 1, UnitPrice: &negativo}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, store, _ := newTestKardex(t, inventory.Policy{AutoDeleteOnZero: true}, testProduct("p1", 10))

			_, err := uc.RegisterMovement(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			p := mustGetProduct(t, store, "p1")
			assert.Equal(t, 10, p.Quantity, "un movimiento rechazado no cambia nada")
			assertMovementCount(t, store, 0)
		})
	}
}

// TestRegisterMovement_RollbackSiPersistenciaFalla: si el flush falla, ni el
// producto ni el log cambian y el error envuelve ErrPersistence.
func TestRegisterMovement_RollbackSiPersistenciaFalla(t *testing.T) {
	uc, store, storage := newTestKardex(t, inventory.Policy{AutoDeleteOnZero: true}, testProduct("p1", 10))
	storage.failSaves = true

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID: "p1",
		Type:      entity.ReasonSale,
		Quantity:  4,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)

	p := mustGetProduct(t, store, "p1")
	assert.Equal(t, 10, p.Quantity, "el estado en memoria debe quedar como antes del intento")
	assertMovementCount(t, store, 0)
}

// TestRegisterMovement_TrazaSecuencial reproduce la traza 0→10→6→0 con la
// eliminación al final.
func TestRegisterMovement_TrazaSecuencial(t *testing.T) {
	uc, store, _ := newTestKardex(t, inventory.Policy{AutoDeleteOnZero: true}, testProduct("p1", 0))
	ctx := context.Background()

	pasos := []struct {
		tipo     string
		cantidad int
		want     int
	}{
		{entity.ReasonPurchase, 10, 10},
		{entity.ReasonSale, 4, 6},
	}
	for _, paso := range pasos {
		_, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{
			ProductID: "p1", Type: paso.tipo, Quantity: paso.cantidad,
		})
		require.NoError(t, err)
		assert.Equal(t, paso.want, mustGetProduct(t, store, "p1").Quantity)
	}

	// El último paso pide 20 con solo 6 en stock: topa en cero y elimina.
	_, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		ProductID: "p1", Type: entity.ReasonSale, Quantity: 20,
	})
	require.NoError(t, err)
	assertProductGone(t, store, "p1")
	assertMovementCount(t, store, 3)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func mustGetProduct(t *testing.T, store *memory.Store, id string) *entity.Product {
	t.Helper()
	p, err := memory.NewProductRepository(store).GetByID(id)
	require.NoError(t, err)
	return p
}

func assertProductGone(t *testing.T, store *memory.Store, id string) {
	t.Helper()
	_, err := memory.NewProductRepository(store).GetByID(id)
	assert.ErrorIs(t, err, domain.ErrNotFound, "el producto debe haber sido eliminado")
}

func assertMovementLogged(t *testing.T, store *memory.Store, movID string) {
	t.Helper()
	movements, err := memory.NewMovementRepository(store).List()
	require.NoError(t, err)
	for _, m := range movements {
		if m.ID == movID {
			return
		}
	}
	t.Fatalf("el movimiento %s debe estar en el log", movID)
}

func assertMovementCount(t *testing.T, store *memory.Store, want int) {
	t.Helper()
	movements, err := memory.NewMovementRepository(store).List()
	require.NoError(t, err)
	assert.Len(t, movements, want)
}
