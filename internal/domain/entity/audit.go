package entity

import "time"

// Audit metadatos de auditoría y borrado lógico compartidos por las entidades.
// Se usa por composición (campo embebido), no por herencia: cada entidad que lo
// necesita lo incluye y las operaciones son explícitas.
type Audit struct {
	Active     bool
	CreatedAt  time.Time
	CreatedBy  string
	ModifiedAt time.Time
	ModifiedBy string
	DeletedAt  *time.Time
	DeletedBy  string
}

// NewAudit crea los metadatos iniciales (activo, con actor y fecha de creación).
func NewAudit(actor string, now time.Time) Audit {
	return Audit{
		Active:     true,
		CreatedAt:  now,
		CreatedBy:  actor,
		ModifiedAt: now,
		ModifiedBy: actor,
	}
}

// Touch registra una modificación.
func (a *Audit) Touch(actor string, now time.Time) {
	a.ModifiedAt = now
	a.ModifiedBy = actor
}

// MarkDeleted aplica borrado lógico: desactiva y estampa actor/fecha.
// No toca ningún otro campo de la entidad (la cantidad de un stock se conserva).
func (a *Audit) MarkDeleted(actor string, now time.Time) {
	a.Active = false
	a.DeletedAt = &now
	a.DeletedBy = actor
	a.Touch(actor, now)
}

// Restore revierte el borrado lógico.
func (a *Audit) Restore(actor string, now time.Time) {
	a.Active = true
	a.DeletedAt = nil
	a.DeletedBy = ""
	a.Touch(actor, now)
}
