package entity

import "time"

// ProductIdentifier asocia un nombre de producto con el prefijo corto que encabeza
// todos sus códigos de lote. Ambos campos son únicos en el registro.
type ProductIdentifier struct {
	ID          string
	ProductName string
	Prefix      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
