package domain

import "time"

// AuditAction names a recorded mutation.
type AuditAction string

const (
	AuditAccountCreated AuditAction = "account.created"
	AuditAccountUpdated AuditAction = "account.updated"
	AuditAccountDeleted AuditAction = "account.deleted"
	AuditInvoiceCreated AuditAction = "invoice.created"
	AuditInvoiceUpdated AuditAction = "invoice.updated"
	AuditInvoiceDeleted AuditAction = "invoice.deleted"
	AuditLogin          AuditAction = "auth.login"
)

// AuditEvent is an append-only record of who changed what.
type AuditEvent struct {
	ActorID  string            `json:"actor_id"`
	Action   AuditAction       `json:"action"`
	Entity   string            `json:"entity"`
	EntityID string            `json:"entity_id"`
	At       time.Time         `json:"at"`
	Detail   map[string]string `json:"detail,omitempty"`
}
