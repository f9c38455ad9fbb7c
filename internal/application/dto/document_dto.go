package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RenderDocumentRequest body para POST /api/documents/render: documento aún no
// persistido (cotizaciones, punto de venta). El plan se toma del usuario del token.
type RenderDocumentRequest struct {
	TemplateID int             `json:"template_id,omitempty"`
	Invoice    DocumentInvoice `json:"invoice"`
	Client     DocumentParty   `json:"client"`
	Company    DocumentParty   `json:"company"`
	Items      []DocumentItem  `json:"items"`
}

// DocumentInvoice cabecera del documento.
type DocumentInvoice struct {
	ID             string          `json:"id,omitempty"`
	InvoiceNumber  string          `json:"invoice_number"`
	IssueDate      time.Time       `json:"issue_date"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	Currency       string          `json:"currency"`
	Status         string          `json:"status,omitempty"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	DiscountRate   decimal.Decimal `json:"discount_rate"`
	ShippingCharge decimal.Decimal `json:"shipping_charge"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	Notes          string          `json:"notes,omitempty"`
	Terms          string          `json:"terms,omitempty"`
}

// DocumentParty emisor o cliente.
type DocumentParty struct {
	Name        string `json:"name"`
	CompanyName string `json:"company_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`
	TaxID       string `json:"tax_id,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	Country     string `json:"country,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}

// DocumentItem línea del documento.
type DocumentItem struct {
	ProductName string          `json:"product_name"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit,omitempty"`
	Rate        decimal.Decimal `json:"rate"`
}

// BulkExportRequest body para POST /api/invoices/export.
type BulkExportRequest struct {
	InvoiceIDs []string `json:"invoice_ids"`
}
