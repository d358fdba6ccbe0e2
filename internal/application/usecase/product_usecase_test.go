package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/memory"
)

// nullStorage descarta todo; suficiente para tests de casos de uso donde
// solo importa el estado en memoria.
type nullStorage struct{}

func (nullStorage) LoadProducts(_ context.Context) ([]*entity.Product, error)   { return nil, nil }
func (nullStorage) SaveProducts(_ context.Context, _ []*entity.Product) error   { return nil }
func (nullStorage) LoadMovements(_ context.Context) ([]*entity.Movement, error) { return nil, nil }
func (nullStorage) SaveMovements(_ context.Context, _ []*entity.Movement) error { return nil }

func newProductUC(t *testing.T) *usecase.ProductUseCase {
	t.Helper()
	store := memory.NewStore(nullStorage{})
	require.NoError(t, store.Load(context.Background()))
	return usecase.NewProductUseCase(memory.NewProductRepository(store), memory.NewTxRunner(store))
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestProductUseCase_CreateConDefaults(t *testing.T) {
	uc := newProductUC(t)

	resp, err := uc.Create(dto.CreateProductRequest{
		Name:     "Guantes de nitrilo",
		Category: "seguridad",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID, "el ID lo asigna el servidor")
	assert.Equal(t, 0, resp.Quantity, "cantidad ausente arranca en cero")
	assert.Equal(t, entity.DefaultMinStock, resp.MinStock)
	assert.WithinDuration(t, time.Now(), resp.LastModified, time.Minute)
}

func TestProductUseCase_CreateCantidadNegativaQuedaEnCero(t *testing.T) {
	uc := newProductUC(t)

	resp, err := uc.Create(dto.CreateProductRequest{
		Name:     "Casco",
		Category: "seguridad",
		Quantity: intPtr(-7),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Quantity)
}

func TestProductUseCase_CreateValidaCamposObligatorios(t *testing.T) {
	uc := newProductUC(t)

	_, err := uc.Create(dto.CreateProductRequest{Category: "seguridad"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin nombre")

	_, err = uc.Create(dto.CreateProductRequest{Name: "Casco"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin categoría")
}

func TestProductUseCase_UpdateParcial(t *testing.T) {
	uc := newProductUC(t)
	created, err := uc.Create(dto.CreateProductRequest{
		Name: "Botas", Category: "seguridad",
		Quantity: intPtr(10), MinStock: intPtr(2),
		SKU: "BOT-01",
	})
	require.NoError(t, err)

	// Solo cambia la cantidad; el resto se conserva.
	updated, err := uc.Update(created.ID, dto.UpdateProductRequest{Quantity: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)
	assert.Equal(t, "Botas", updated.Name)
	assert.Equal(t, "BOT-01", updated.SKU)
	assert.Equal(t, 2, updated.MinStock)
}

func TestProductUseCase_UpdateCantidadNegativaSeRecorta(t *testing.T) {
	uc := newProductUC(t)
	created, err := uc.Create(dto.CreateProductRequest{
		Name: "Botas", Category: "seguridad", Quantity: intPtr(10),
	})
	require.NoError(t, err)

	updated, err := uc.Update(created.ID, dto.UpdateProductRequest{Quantity: intPtr(-3)})
	require.NoError(t, err, "cantidad negativa no es error, se recorta")
	assert.Equal(t, 0, updated.Quantity)
}

func TestProductUseCase_UpdateNombreVacioEsError(t *testing.T) {
	uc := newProductUC(t)
	created, err := uc.Create(dto.CreateProductRequest{Name: "Botas", Category: "seguridad"})
	require.NoError(t, err)

	_, err = uc.Update(created.ID, dto.UpdateProductRequest{Name: strPtr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Ediciones directas y movimientos comparten la misma transacción por
// producto: una edición que solo toca la descripción nunca debe pisar la
// cantidad dejada por un movimiento intercalado.
func TestProductUseCase_UpdateConcurrenteConMovimientos(t *testing.T) {
	store := memory.NewStore(nullStorage{})
	require.NoError(t, store.Load(context.Background()))
	txRunner := memory.NewTxRunner(store)
	productUC := usecase.NewProductUseCase(memory.NewProductRepository(store), txRunner)
	movementUC := inventory.NewRegisterMovementUseCase(txRunner, inventory.Policy{AutoDeleteOnZero: true})

	created, err := productUC.Create(dto.CreateProductRequest{
		Name: "Tornillos", Category: "ferretería", Quantity: intPtr(1000),
	})
	require.NoError(t, err)

	const n = 200
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := movementUC.RegisterMovement(ctx, inventory.MovementInputDTO{
				ProductID: created.ID, Type: entity.ReasonSale, Quantity: 1,
			})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := productUC.Update(created.ID, dto.UpdateProductRequest{
				Description: strPtr("reetiquetado"),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := productUC.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000-n, got.Quantity, "ninguna venta debe perderse por una edición concurrente")
	assert.Equal(t, "reetiquetado", got.Description)
}

func TestProductUseCase_UpdateInexistente(t *testing.T) {
	uc := newProductUC(t)
	_, err := uc.Update("fantasma", dto.UpdateProductRequest{Quantity: intPtr(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_DeleteInexistente(t *testing.T) {
	uc := newProductUC(t)
	err := uc.Delete("fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_List(t *testing.T) {
	uc := newProductUC(t)
	_, err := uc.Create(dto.CreateProductRequest{Name: "A", Category: "x"})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateProductRequest{Name: "B", Category: "x"})
	require.NoError(t, err)

	list, err := uc.List()
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Len(t, list.Items, 2)
}
