package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/invoice-docs/internal/domain/entity"
	"github.com/jhoicas/invoice-docs/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, user_id, client_id, invoice_number, issue_date, due_date,
	COALESCE(currency, 'USD'), status,
	COALESCE(tax_rate, 0), COALESCE(discount_rate, 0), COALESCE(shipping_charge, 0),
	COALESCE(subtotal, 0), COALESCE(tax_amount, 0), COALESCE(discount_amount, 0),
	COALESCE(total, 0), COALESCE(paid_amount, 0),
	COALESCE(notes, ''), COALESCE(terms, ''),
	created_at, updated_at`

// GetByID obtiene una factura por ID. Devuelve (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetItemsByInvoiceID obtiene las líneas de una factura en el orden del documento.
func (r *InvoiceRepo) GetItemsByInvoiceID(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, position, product_name, COALESCE(description, ''),
		       quantity, COALESCE(unit, ''), rate, COALESCE(amount, 0)
		FROM invoice_items WHERE invoice_id = $1 ORDER BY position, id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()

	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(
			&it.ID, &it.InvoiceID, &it.Position, &it.ProductName, &it.Description,
			&it.Quantity, &it.Unit, &it.Rate, &it.Amount,
		); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoice items: %w", err)
	}
	return list, nil
}

func scanInvoice(row pgxScanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.UserID, &inv.ClientID, &inv.InvoiceNumber, &inv.IssueDate, &inv.DueDate,
		&inv.Currency, &inv.Status,
		&inv.TaxRate, &inv.DiscountRate, &inv.ShippingCharge,
		&inv.Subtotal, &inv.TaxAmount, &inv.DiscountAmount,
		&inv.Total, &inv.PaidAmount,
		&inv.Notes, &inv.Terms,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
