package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/invoice-docs/internal/domain/entity"
	"github.com/jhoicas/invoice-docs/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación de CompanyRepository.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// GetByUserID obtiene el perfil de empresa del usuario. Devuelve (nil, nil) si el
// usuario aún no lo configuró.
func (r *CompanyRepo) GetByUserID(ctx context.Context, userID string) (*entity.Company, error) {
	query := `
		SELECT id, user_id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(website, ''),
		       COALESCE(address, ''), COALESCE(city, ''), COALESCE(state, ''),
		       COALESCE(postal_code, ''), COALESCE(country, ''), COALESCE(tax_id, ''),
		       COALESCE(logo_url, ''), created_at, updated_at
		FROM companies WHERE user_id = $1`
	var c entity.Company
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Website,
		&c.Address, &c.City, &c.State, &c.PostalCode, &c.Country, &c.TaxID,
		&c.LogoURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}
