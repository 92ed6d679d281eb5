package entity

import "time"

// Company representa un proveedor/fabricante cuyos lotes se reciben en inventario.
type Company struct {
	ID        string
	Name      string
	Address   string
	GSTNumber string // GSTIN (India), único
	CreatedAt time.Time
	UpdatedAt time.Time
}
