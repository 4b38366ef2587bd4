package repository

import "github.com/gestorpyme/gestor-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// AdjustStock es la única vía de mutación de stock: un UPDATE condicional que
// nunca deja el stock negativo (retorna ErrInsufficientStock si no alcanza).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCompanyAndCode(companyID, code string) (*entity.Product, error)
	Update(product *entity.Product) error
	// AdjustStock aplica stock = stock + delta de forma atómica; si el
	// resultado sería negativo no modifica nada y retorna ErrInsufficientStock.
	AdjustStock(productID string, delta int64) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	// ListAllByCompany devuelve el catálogo completo (snapshot para reportes,
	// ledger y alertas).
	ListAllByCompany(companyID string) ([]*entity.Product, error)
	// Search busca por código, descripción, categoría o marca; term llega ya
	// normalizado (minúsculas, sin tildes).
	Search(companyID, term string, limit int) ([]*entity.Product, error)
	Delete(id string) error
}
