package repository

import "github.com/gestorpyme/gestor-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByIDs(ids []string) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error)
	// Search busca por nombre, NIT o ciudad; term llega ya normalizado.
	Search(companyID, term string, limit int) ([]*entity.Customer, error)
	Delete(id string) error
}

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Supplier, error)
	Search(companyID, term string, limit int) ([]*entity.Supplier, error)
	Delete(id string) error
}
