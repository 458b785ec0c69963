// Package memory implementa los puertos de persistencia en memoria para los tests de casos de uso
// y de handlers. Aplica las mismas reglas que el esquema PostgreSQL (FK de variantes, borrado en
// cascada, stock y precio no negativos) y transacciones reales: Run trabaja sobre una copia del
// estado y la publica solo al confirmar. El binario no lo usa.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

type state struct {
	products      map[int64]entity.Product
	variants      map[int64]entity.ProductVariant
	audit         []entity.AuditLog
	nextProductID int64
	nextVariantID int64
}

func newState() *state {
	return &state{
		products: make(map[int64]entity.Product),
		variants: make(map[int64]entity.ProductVariant),
	}
}

func (s *state) clone() *state {
	c := &state{
		products:      make(map[int64]entity.Product, len(s.products)),
		variants:      make(map[int64]entity.ProductVariant, len(s.variants)),
		audit:         make([]entity.AuditLog, len(s.audit)),
		nextProductID: s.nextProductID,
		nextVariantID: s.nextVariantID,
	}
	for id, p := range s.products {
		c.products[id] = p
	}
	for id, v := range s.variants {
		c.variants[id] = copyVariant(v)
	}
	copy(c.audit, s.audit)
	return c
}

// Store base de datos en memoria. Segura para uso concurrente.
type Store struct {
	mu  sync.RWMutex
	st  *state
	now func() time.Time
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{st: newState(), now: time.Now}
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{access{db: s}} }

// Variants repositorio de variantes fuera de transacción.
func (s *Store) Variants() *VariantRepo { return &VariantRepo{access{db: s}} }

// Audit repositorio de auditoría fuera de transacción.
func (s *Store) Audit() *AuditRepo { return &AuditRepo{access{db: s}} }

// TxRunner ejecutor de transacciones sobre este almacén.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{db: s} }

// access resuelve sobre qué estado opera un repositorio: el de una transacción abierta
// (ya protegida por el lock de escritura) o el publicado, tomando el lock correspondiente.
type access struct {
	db *Store
	tx *state
}

func (a access) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.tx != nil {
		return fn(a.tx)
	}
	a.db.mu.RLock()
	defer a.db.mu.RUnlock()
	return fn(a.db.st)
}

func (a access) write(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.tx != nil {
		return fn(a.tx)
	}
	a.db.mu.Lock()
	defer a.db.mu.Unlock()
	return fn(a.db.st)
}

func copyVariant(v entity.ProductVariant) entity.ProductVariant {
	if v.NeckType != nil {
		n := *v.NeckType
		v.NeckType = &n
	}
	if v.Fit != nil {
		f := *v.Fit
		v.Fit = &f
	}
	return v
}
