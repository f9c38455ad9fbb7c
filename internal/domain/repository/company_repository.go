package repository

import (
	"context"

	"github.com/jhoicas/invoice-docs/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para la empresa emisora (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Company, error)
}
