package entity

// Supplier proveedor al que se le registran gastos y pagos.
type Supplier struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string
	Audit     Audit
}
