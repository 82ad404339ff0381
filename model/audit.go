// model/audit.go
package model

import "time"

// AuditRecord rows are append-only; nothing in the service layer ever
// updates or deletes one.
type AuditRecord struct {
	ID           int64     `db:"id" json:"id"`
	EventType    string    `db:"event_type" json:"event_type"`
	EventContent string    `db:"event_content" json:"event_content"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

const (
	EventRentBook    = "rent book"
	EventReturnBook  = "return book"
	EventExtendBook  = "extend book"
	EventCreateBook  = "create book"
	EventDeleteBook  = "delete book"
	EventCreateUser  = "create user"
	EventDisableUser = "disable user"
)
