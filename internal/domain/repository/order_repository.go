package repository

import (
	"time"

	"github.com/gestorpyme/gestor-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos. Hay dos
// instancias del adaptador: una sobre sales_orders y otra sobre
// purchase_orders; el contrato es idéntico.
type OrderRepository interface {
	// Create inserta cabecera y líneas. El Seq lo asigna la base de datos
	// (consecutivo de inserción, desempate del ledger).
	Create(order *entity.Order) error
	// GetByID devuelve el pedido con sus líneas; (nil, nil) si no existe.
	GetByID(id string) (*entity.Order, error)
	// ListByCompany lista cabeceras con líneas, filtradas opcionalmente por
	// estado (status vacío = todos), ordenadas por fecha descendente.
	ListByCompany(companyID, status string, limit, offset int) ([]*entity.Order, error)
	// ListAllByCompany devuelve el conjunto completo de pedidos con líneas
	// (snapshot para reportes y ledger).
	ListAllByCompany(companyID string) ([]*entity.Order, error)
	UpdateStatus(id, status string, updatedAt time.Time) error
	// NextNumber devuelve el siguiente consecutivo del número legible por
	// empresa (1, 2, 3, ...). Debe llamarse dentro de la transacción de Create.
	NextNumber(companyID string) (int64, error)
}
