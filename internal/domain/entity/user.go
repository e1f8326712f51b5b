package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleComprador = "comprador"
)

// User usuario de la aplicación (actor de los movimientos e imputaciones).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Company empresa dueña de los datos (multi-tenant por company_id).
type Company struct {
	ID        string
	Name      string
	TaxID     string
	CreatedAt time.Time
}
