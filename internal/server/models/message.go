package models

import "time"

// Message is a contact request submitted through the website form.
// Phone is optional; the record is never updated once written.
type Message struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Details   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
