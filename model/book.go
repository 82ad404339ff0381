// model/book.go
package model

import "time"

type RentalStatus string

const (
	StatusAvailable    RentalStatus = "available"
	StatusRented       RentalStatus = "rented"
	StatusLost         RentalStatus = "lost"
	StatusBroken       RentalStatus = "broken"
	StatusPresentation RentalStatus = "presentation"
	StatusOrdered      RentalStatus = "ordered"
	StatusRemote       RentalStatus = "remote"
)

func (s RentalStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusRented, StatusLost, StatusBroken,
		StatusPresentation, StatusOrdered, StatusRemote:
		return true
	}
	return false
}

type Book struct {
	ID           int64        `db:"id" json:"id"`
	Title        string       `db:"title" json:"title"`
	Author       string       `db:"author" json:"author"`
	ISBN         *string      `db:"isbn" json:"isbn,omitempty"`
	RentalStatus RentalStatus `db:"rental_status" json:"rental_status"`
	UserID       *int64       `db:"user_id" json:"user_id,omitempty"`
	DueDate      *time.Time   `db:"due_date" json:"due_date,omitempty"`
	RenewalCount int          `db:"renewal_count" json:"renewal_count"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}
