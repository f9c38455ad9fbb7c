package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/invoice-docs/internal/domain/entity"
	"github.com/jhoicas/invoice-docs/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación de SettingsRepository sobre la tabla user_settings.
type SettingsRepo struct {
	q   Querier
	now func() time.Time
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q, now: time.Now}
}

// GetByUserID devuelve (nil, nil) si el usuario no tiene fila de preferencias.
func (r *SettingsRepo) GetByUserID(ctx context.Context, userID string) (*entity.UserSettings, error) {
	query := `
		SELECT user_id, COALESCE(selected_template, 0), COALESCE(subscription_tier, ''), updated_at
		FROM user_settings WHERE user_id = $1`
	var s entity.UserSettings
	err := r.q.QueryRow(ctx, query, userID).Scan(&s.UserID, &s.SelectedTemplate, &s.SubscriptionTier, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user settings: %w", err)
	}
	return &s, nil
}

// UpsertSelectedTemplate guarda la plantilla elegida sin tocar el plan.
func (r *SettingsRepo) UpsertSelectedTemplate(ctx context.Context, userID string, templateID int) error {
	query := `
		INSERT INTO user_settings (user_id, selected_template, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET selected_template = EXCLUDED.selected_template,
		    updated_at        = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, userID, templateID, r.now().UTC()); err != nil {
		return fmt.Errorf("upsert user settings: %w", err)
	}
	return nil
}
