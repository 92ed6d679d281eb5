package entity

import "time"

// Customer representa un cliente al que se le factura.
type Customer struct {
	ID        string
	Name      string
	Mobile    string // único
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
