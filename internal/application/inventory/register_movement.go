package inventory

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso
// RegisterMovement(ctx, MovementInputDTO). Usar desde handlers HTTP.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, in dto.CreateMovementRequest) (*entity.Movement, error) {
	input := MovementInputDTO{
		ProductID: in.ProductID,
		Type:      in.Type,
		Polarity:  in.Polarity,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Reference: in.Reference,
		Reason:    in.Reason,
	}
	return uc.RegisterMovement(ctx, input)
}
