package repository

import (
	"context"

	"github.com/jhoicas/invoice-docs/internal/domain/entity"
)

// SettingsRepository define el puerto de persistencia para las preferencias del usuario.
// GetByUserID devuelve (nil, nil) si el usuario aún no tiene fila de preferencias.
type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.UserSettings, error)
	UpsertSelectedTemplate(ctx context.Context, userID string, templateID int) error
}
