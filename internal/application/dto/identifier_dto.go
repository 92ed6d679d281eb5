package dto

// UpdatePrefixRequest body para PUT /api/identifiers/:id.
type UpdatePrefixRequest struct {
	Prefix string `json:"prefix" validate:"required,alphanumunicode,min=2,max=8"`
}

// IdentifierResponse registro producto -> prefijo.
type IdentifierResponse struct {
	ID          string `json:"id"`
	ProductName string `json:"product_name"`
	Prefix      string `json:"prefix"`
}

// UpdatePrefixResponse resultado de un cambio de prefijo.
type UpdatePrefixResponse struct {
	IdentifierResponse
	RewrittenBatches int64 `json:"rewritten_batches"`
}
