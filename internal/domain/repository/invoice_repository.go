package repository

import (
	"context"

	"github.com/jhoicas/invoice-docs/internal/domain/entity"
)

// InvoiceRepository define el puerto de lectura de facturas e ítems.
// GetByID devuelve (nil, nil) si la factura no existe.
type InvoiceRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
}
