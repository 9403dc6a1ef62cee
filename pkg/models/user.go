package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is owned by the auth service. Checkout only reads the contact fields.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"   json:"id"`
	FirstName   string    `gorm:"size:150"               json:"first_name"`
	LastName    string    `gorm:"size:150"               json:"last_name"`
	Email       string    `gorm:"size:254;uniqueIndex"   json:"email"`
	PhoneNumber string    `gorm:"size:20"                json:"phone_number"`
	CreatedAt   time.Time `                              json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	FullName   string    `gorm:"size:255"              json:"full_name"`
	Phone      string    `gorm:"size:20"               json:"phone"`
	Line1      string    `gorm:"size:255;not null"     json:"line1"`
	Line2      string    `gorm:"size:255"              json:"line2"`
	City       string    `gorm:"size:100;not null"     json:"city"`
	State      string    `gorm:"size:100"              json:"state"`
	PostalCode string    `gorm:"size:20"               json:"postal_code"`
	Country    string    `gorm:"size:100"              json:"country"`
	CreatedAt  time.Time `                             json:"created_at"`
}

func (Address) TableName() string {
	return "addresses"
}
