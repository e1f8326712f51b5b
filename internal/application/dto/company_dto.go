package dto

// CreateCompanyRequest body para POST /api/companies.
type CreateCompanyRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
}

// CompanyDTO empresa en respuestas.
type CompanyDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
}
