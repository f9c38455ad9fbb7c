package entity

import "time"

// Client representa el cliente (destinatario) de una factura.
type Client struct {
	ID          string
	UserID      string
	Name        string
	CompanyName string
	Email       string
	Phone       string
	Address     string
	City        string
	State       string
	PostalCode  string
	Country     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
