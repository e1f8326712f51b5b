package entity

// Product producto terminado o materia prima. Si tiene subproductos (rollos,
// tramos), el stock se lleva a nivel de subproducto y no del producto.
type Product struct {
	ID             string
	CompanyID      string
	SKU            string
	Name           string
	NormalizedName string // nombre sin tildes y en minúsculas, para búsqueda
	Description    string
	Audit          Audit
}

// Subproduct unidad física derivada de un producto (ej. un rollo de cable).
// El stock y las reservas de corte apuntan siempre al subproducto.
type Subproduct struct {
	ID        string
	ProductID string
	Name      string
	Audit     Audit
}
