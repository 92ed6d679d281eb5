package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Address   string `json:"address" validate:"max=500"`
	GSTNumber string `json:"gst_number" validate:"required,gstin"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address   *string `json:"address" validate:"omitempty,max=500"`
	GSTNumber *string `json:"gst_number" validate:"omitempty,gstin"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	GSTNumber string    `json:"gst_number"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
