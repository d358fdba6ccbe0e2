package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. La cantidad también puede
// cambiar vía movimientos (reconciliador); aquí solo ediciones directas.
// Las ediciones pasan por el mismo TxRunner que los movimientos: leer,
// mezclar y escribir ocurren en una sola sección crítica.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner inventory.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un producto nuevo. Cantidad ausente o negativa queda en 0;
// MinStock ausente toma el valor por defecto.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Category == "" {
		return nil, domain.ErrInvalidInput
	}
	quantity := 0
	if in.Quantity != nil && *in.Quantity > 0 {
		quantity = *in.Quantity
	}
	minStock := entity.DefaultMinStock
	if in.MinStock != nil {
		minStock = *in.MinStock
	}
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Category:     in.Category,
		SKU:          in.SKU,
		Description:  in.Description,
		Quantity:     quantity,
		MinStock:     minStock,
		LastModified: time.Now(),
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update mezcla los campos presentes sobre el registro existente y refresca
// LastModified. Cantidad negativa se recorta a 0, nunca es error.
// Leer-mezclar-escribir corre dentro de una transacción: un movimiento
// intercalado nunca queda pisado por la copia leída antes de la mezcla.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out *dto.ProductResponse
	err := uc.txRunner.Run(context.Background(), func(
		productRepo repository.ProductRepository,
		_ repository.MovementRepository,
	) error {
		product, err := productRepo.GetByID(id)
		if err != nil {
			return err
		}
		if err := mergeProductUpdate(product, in); err != nil {
			return err
		}
		product.LastModified = time.Now()
		if err := productRepo.Update(product); err != nil {
			return err
		}
		out = toProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// mergeProductUpdate aplica los campos presentes del request sobre el
// registro cargado. Nombre o categoría vacíos son ErrInvalidInput.
func mergeProductUpdate(product *entity.Product, in dto.UpdateProductRequest) error {
	if in.Name != nil {
		if *in.Name == "" {
			return domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Category != nil {
		if *in.Category == "" {
			return domain.ErrInvalidInput
		}
		product.Category = *in.Category
	}
	if in.SKU != nil {
		product.SKU = *in.SKU
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Quantity != nil {
		q := *in.Quantity
		if q < 0 {
			q = 0
		}
		product.Quantity = q
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	return nil
}

// List lista todos los productos, LastModified descendente.
func (uc *ProductUseCase) List() (*dto.ProductListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Delete elimina un producto por ID; ErrNotFound si no existía.
func (uc *ProductUseCase) Delete(id string) error {
	existed, err := uc.repo.Delete(id)
	if err != nil {
		return err
	}
	if !existed {
		return domain.ErrNotFound
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		SKU:          p.SKU,
		Description:  p.Description,
		Quantity:     p.Quantity,
		MinStock:     p.MinStock,
		LastModified: p.LastModified,
	}
}
