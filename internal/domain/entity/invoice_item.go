package entity

import "github.com/shopspring/decimal"

// InvoiceItem representa una línea de detalle de una factura.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Position    int
	ProductName string
	Description string
	Quantity    decimal.Decimal
	Unit        string // "hrs", "pcs", ... (opcional)
	Rate        decimal.Decimal
	Amount      decimal.Decimal // persistido; se recalcula como Quantity × Rate
}
