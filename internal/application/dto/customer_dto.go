package dto

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Mobile  string `json:"mobile" validate:"required,numeric,min=7,max=15"`
	Address string `json:"address,omitempty" validate:"max=500"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id.
type UpdateCustomerRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Mobile  *string `json:"mobile" validate:"omitempty,numeric,min=7,max=15"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Address string `json:"address,omitempty"`
}
