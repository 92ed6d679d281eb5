package entity

import "time"

// BatchHistory foto de un lote en el momento en que quedó vacío. Solo se inserta.
type BatchHistory struct {
	ID              string
	BatchID         string
	ProductName     string
	BatchCode       string
	CompanyName     string
	InitialUnits    int
	ManufactureDate time.Time
	ExpiryDate      time.Time
	EmptiedDate     time.Time
	CreatedAt       time.Time
}
