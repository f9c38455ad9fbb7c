package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusPartial   = "partially_paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// Invoice representa la cabecera de una factura tal como se persiste.
// Los montos derivados (subtotal, impuesto, total) se guardan como referencia,
// pero el documento siempre los recalcula a partir de los ítems.
type Invoice struct {
	ID             string
	UserID         string
	ClientID       string
	InvoiceNumber  string
	IssueDate      time.Time
	DueDate        *time.Time      // nil = sin vencimiento
	Currency       string          // ISO 4217 (USD, EUR, ...)
	Status         string          // ver constantes InvoiceStatus*
	TaxRate        decimal.Decimal // porcentaje, ej. 10 = 10%
	DiscountRate   decimal.Decimal // porcentaje
	ShippingCharge decimal.Decimal // monto fijo
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	PaidAmount     decimal.Decimal
	Notes          string
	Terms          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
