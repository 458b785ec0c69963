package repository

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) cuando no existe; Delete sobre un id inexistente no hace nada.
// Update sobre una fila inexistente no tiene comportamiento definido: quien llama verifica existencia antes.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
}
