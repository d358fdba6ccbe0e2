package usecase

import (
	"errors"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// Texto de respaldo cuando el producto referenciado ya fue eliminado.
const DeletedProductFallback = "producto ya no existe"

// MovementUseCase consultas read-only sobre el log de movimientos.
// La creación de movimientos pasa por el reconciliador (paquete inventory).
type MovementUseCase struct {
	movRepo     repository.MovementRepository
	productRepo repository.ProductRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(movRepo repository.MovementRepository, productRepo repository.ProductRepository) *MovementUseCase {
	return &MovementUseCase{movRepo: movRepo, productRepo: productRepo}
}

// List devuelve los movimientos, más reciente primero, con el nombre del
// producto resuelto. ProductID es referencia débil: para productos ya
// eliminados se usa el texto de respaldo.
func (uc *MovementUseCase) List() (*dto.MovementListResponse, error) {
	movements, err := uc.movRepo.List()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		name, ok := names[m.ProductID]
		if !ok {
			name = uc.resolveProductName(m.ProductID)
			names[m.ProductID] = name
		}
		items = append(items, toMovementResponse(m, name))
	}
	return &dto.MovementListResponse{Items: items, Total: len(items)}, nil
}

func (uc *MovementUseCase) resolveProductName(productID string) string {
	product, err := uc.productRepo.GetByID(productID)
	if errors.Is(err, domain.ErrNotFound) || product == nil {
		return DeletedProductFallback
	}
	return product.Name
}

func toMovementResponse(m *entity.Movement, productName string) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: productName,
		Polarity:    m.Polarity,
		ReasonType:  m.ReasonType,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		TotalPrice:  m.TotalPrice,
		Reference:   m.Reference,
		Reason:      m.Reason,
		Timestamp:   m.Timestamp,
	}
}
