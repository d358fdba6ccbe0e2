package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// Policy comportamiento configurable del reconciliador.
type Policy struct {
	// AutoDeleteOnZero elimina el producto cuando un movimiento de salida
	// deja la cantidad exactamente en cero. Presente solo en uno de los
	// prototipos observados; por eso es política explícita y no cableada.
	AutoDeleteOnZero bool
}

// RegisterMovementUseCase es el reconciliador del kardex: valida el
// movimiento solicitado, aplica el efecto con tope en cero sobre el
// producto y agrega la entrada al log, todo en una transacción.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	policy   Policy
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, policy Policy) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, policy: policy}
}

// MovementInputDTO entrada para registrar un movimiento.
// Type admite el vocabulario canónico (sale, purchase, adjustment, return)
// y los tipos legados (in, out, add, remove); Polarity es obligatoria solo
// para adjustment y debe coincidir con la implícita en los demás casos.
type MovementInputDTO struct {
	ProductID string
	Type      string
	Polarity  string
	Quantity  int
	UnitPrice *int64 // centavos
	Reference string
	Reason    string
}

// RegisterMovement valida, aplica y registra el movimiento. Reglas:
//
//  1. Quantity > 0 y (polaridad, razón) miembro del modelo canónico; si no,
//     ErrInvalidInput sin ningún cambio de estado.
//  2. Producto inexistente: el movimiento se registra igual como entrada
//     huérfana de auditoría, sin efecto de cantidad y sin error.
//  3. NuevaCantidad = max(0, actual + delta); se refresca LastModified.
//  4. Política de auto-eliminación: salida que deja la cantidad en cero
//     elimina el producto (si la política está activa).
//  5. El movimiento se agrega al log después de aplicar la cantidad,
//     sobreviva o no el producto.
//
// Devuelve el movimiento creado, con ID y Timestamp asignados por el servidor.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*entity.Movement, error) {
	if input.ProductID == "" || input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	kind, err := ledger.ResolveKind(input.Type, input.Polarity)
	if err != nil {
		return nil, err
	}
	if input.UnitPrice != nil && *input.UnitPrice < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	mov := &entity.Movement{
		ID:         uuid.New().String(),
		ProductID:  input.ProductID,
		Polarity:   kind.Polarity,
		ReasonType: kind.ReasonType,
		Quantity:   input.Quantity,
		UnitPrice:  input.UnitPrice,
		Reference:  input.Reference,
		Reason:     input.Reason,
		Timestamp:  now,
	}
	if input.UnitPrice != nil {
		total := *input.UnitPrice * int64(input.Quantity)
		mov.TotalPrice = &total
	}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error {
		product, err := productRepo.GetByID(input.ProductID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			// Entrada huérfana: se conserva para auditoría, sin efecto.
		case err != nil:
			return err
		default:
			if err := uc.applyToProduct(productRepo, product, mov, now); err != nil {
				return err
			}
		}
		return movRepo.Append(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// applyToProduct ejecuta la actualización con tope en cero y la política de
// auto-eliminación sobre un producto existente.
func (uc *RegisterMovementUseCase) applyToProduct(
	productRepo repository.ProductRepository,
	product *entity.Product,
	mov *entity.Movement,
	now time.Time,
) error {
	newQuantity := ledger.ApplyDelta(product.Quantity, mov.SignedDelta())

	if uc.policy.AutoDeleteOnZero && mov.Polarity == entity.PolarityDecrease && newQuantity == 0 {
		_, err := productRepo.Delete(product.ID)
		return err
	}

	product.Quantity = newQuantity
	product.LastModified = now
	return productRepo.Update(product)
}
