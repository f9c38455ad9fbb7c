package billing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/invoice-docs/internal/domain"
	"github.com/jhoicas/invoice-docs/internal/domain/entity"
	"github.com/jhoicas/invoice-docs/internal/domain/invoicetemplate"
	"github.com/jhoicas/invoice-docs/internal/domain/repository"
)

// TemplateSelector resuelve la plantilla elegida por el usuario. La selección nunca
// bloquea la generación del documento: cualquier fallo cae en la plantilla por defecto.
type TemplateSelector struct {
	sessions SessionProvider
	settings repository.SettingsRepository
	log      zerolog.Logger
}

// NewTemplateSelector construye el selector.
func NewTemplateSelector(sessions SessionProvider, settings repository.SettingsRepository, log zerolog.Logger) *TemplateSelector {
	return &TemplateSelector{sessions: sessions, settings: settings, log: log}
}

// Selected devuelve la plantilla del usuario de la sesión actual.
//
//   - sin sesión o error de sesión      → plantilla por defecto
//   - sin fila de preferencias o id ≤ 0 → plantilla 1
//   - error del almacenamiento          → plantilla por defecto
func (s *TemplateSelector) Selected(ctx context.Context) invoicetemplate.Config {
	if s.sessions == nil {
		return invoicetemplate.Default()
	}
	userID, err := s.sessions.CurrentUserID(ctx)
	if err != nil || userID == "" {
		s.log.Debug().Err(err).Msg("plantilla: sin sesión, se usa la plantilla por defecto")
		return invoicetemplate.Default()
	}
	return s.ForUser(ctx, userID)
}

// ForUser resuelve la plantilla guardada de un usuario concreto (p. ej. el dueño de
// una factura pública).
func (s *TemplateSelector) ForUser(ctx context.Context, userID string) invoicetemplate.Config {
	if s.settings == nil || userID == "" {
		return invoicetemplate.Default()
	}
	settings, err := s.settings.GetByUserID(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("plantilla: no se pudo leer la configuración, se usa la plantilla por defecto")
		return invoicetemplate.Default()
	}
	id := invoicetemplate.DefaultID
	if settings != nil && settings.SelectedTemplate > 0 {
		id = settings.SelectedTemplate
	}
	return invoicetemplate.Get(id)
}

// Save guarda la plantilla elegida por el usuario de la sesión. Las plantillas
// premium requieren un plan premium o enterprise.
func (s *TemplateSelector) Save(ctx context.Context, templateID int) (invoicetemplate.Config, error) {
	if s.sessions == nil {
		return invoicetemplate.Config{}, domain.ErrUnauthorized
	}
	userID, err := s.sessions.CurrentUserID(ctx)
	if err != nil || userID == "" {
		return invoicetemplate.Config{}, domain.ErrUnauthorized
	}
	if !invoicetemplate.Exists(templateID) {
		return invoicetemplate.Config{}, fmt.Errorf("%w: plantilla %d no existe", domain.ErrInvalidInput, templateID)
	}
	cfg := invoicetemplate.Get(templateID)

	if cfg.IsPremium() {
		settings, err := s.settings.GetByUserID(ctx, userID)
		if err != nil {
			return invoicetemplate.Config{}, fmt.Errorf("plantilla: leer configuración: %w", err)
		}
		if settings == nil || !CanUseTemplate(cfg, settings.SubscriptionTier) {
			return invoicetemplate.Config{}, fmt.Errorf("%w: la plantilla %d requiere plan premium", domain.ErrForbidden, templateID)
		}
	}

	if err := s.settings.UpsertSelectedTemplate(ctx, userID, templateID); err != nil {
		return invoicetemplate.Config{}, fmt.Errorf("plantilla: guardar selección: %w", err)
	}
	s.log.Info().Str("user_id", userID).Int("template_id", templateID).Msg("plantilla seleccionada")
	return cfg, nil
}

// CanUseTemplate: las plantillas premium requieren plan premium o enterprise.
func CanUseTemplate(cfg invoicetemplate.Config, tier string) bool {
	if !cfg.IsPremium() {
		return true
	}
	return tier == entity.TierPremium || tier == entity.TierEnterprise
}
