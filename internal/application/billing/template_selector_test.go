package billing_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-docs/internal/application/billing"
	"github.com/jhoicas/invoice-docs/internal/domain"
	"github.com/jhoicas/invoice-docs/internal/domain/entity"
	"github.com/jhoicas/invoice-docs/internal/domain/invoicetemplate"
)

func TestTemplateSelector_Selected(t *testing.T) {
	tests := []struct {
		name     string
		session  fakeSession
		settings *fakeSettingsRepo
		wantID   int
	}{
		{
			name:     "Caso 1: sin sesión usa la plantilla por defecto",
			session:  fakeSession{err: domain.ErrUnauthorized},
			settings: newSettingsRepo(&entity.UserSettings{UserID: "user-1", SelectedTemplate: 7}),
			wantID:   invoicetemplate.DefaultID,
		},
		{
			name:     "Caso 2: sin fila de preferencias usa la plantilla 1",
			session:  fakeSession{userID: "user-1"},
			settings: newSettingsRepo(),
			wantID:   1,
		},
		{
			name:     "Caso 3: plantilla guardada",
			session:  fakeSession{userID: "user-1"},
			settings: newSettingsRepo(&entity.UserSettings{UserID: "user-1", SelectedTemplate: 7}),
			wantID:   7,
		},
		{
			name:     "Caso 4: id cero equivale a no definido",
			session:  fakeSession{userID: "user-1"},
			settings: newSettingsRepo(&entity.UserSettings{UserID: "user-1", SelectedTemplate: 0}),
			wantID:   1,
		},
		{
			name:     "Caso 5: id guardado que ya no existe cae en la plantilla 1",
			session:  fakeSession{userID: "user-1"},
			settings: newSettingsRepo(&entity.UserSettings{UserID: "user-1", SelectedTemplate: 99}),
			wantID:   1,
		},
		{
			name:     "Caso 6: error del almacenamiento usa la plantilla por defecto",
			session:  fakeSession{userID: "user-1"},
			settings: &fakeSettingsRepo{getErr: errBoom},
			wantID:   invoicetemplate.DefaultID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := billing.NewTemplateSelector(tt.session, tt.settings, zerolog.Nop())
			got := s.Selected(context.Background())
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestTemplateSelector_SinDependencias(t *testing.T) {
	s := billing.NewTemplateSelector(nil, nil, zerolog.Nop())
	assert.Equal(t, invoicetemplate.DefaultID, s.Selected(context.Background()).ID)
	assert.Equal(t, invoicetemplate.DefaultID, s.ForUser(context.Background(), "user-1").ID)
}

func TestTemplateSelector_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("plantilla básica para cualquier plan", func(t *testing.T) {
		repo := newSettingsRepo()
		s := billing.NewTemplateSelector(fakeSession{userID: "user-1"}, repo, zerolog.Nop())

		cfg, err := s.Save(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.ID)
		assert.Equal(t, 3, repo.upserted["user-1"])
	})

	t.Run("plantilla premium con plan gratuito", func(t *testing.T) {
		repo := newSettingsRepo(&entity.UserSettings{UserID: "user-1", SubscriptionTier: entity.TierFree})
		s := billing.NewTemplateSelector(fakeSession{userID: "user-1"}, repo, zerolog.Nop())

		_, err := s.Save(ctx, 7)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Empty(t, repo.upserted, "no debe guardarse la selección")
	})

	t.Run("plantilla premium con plan premium", func(t *testing.T) {
		repo := newSettingsRepo(&entity.UserSettings{UserID: "user-1", SubscriptionTier: entity.TierPremium})
		s := billing.NewTemplateSelector(fakeSession{userID: "user-1"}, repo, zerolog.Nop())

		cfg, err := s.Save(ctx, 7)
		require.NoError(t, err)
		assert.True(t, cfg.IsPremium())
		assert.Equal(t, 7, repo.upserted["user-1"])
	})

	t.Run("plantilla inexistente", func(t *testing.T) {
		s := billing.NewTemplateSelector(fakeSession{userID: "user-1"}, newSettingsRepo(), zerolog.Nop())
		_, err := s.Save(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("sin sesión", func(t *testing.T) {
		s := billing.NewTemplateSelector(fakeSession{err: domain.ErrUnauthorized}, newSettingsRepo(), zerolog.Nop())
		_, err := s.Save(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("error al guardar", func(t *testing.T) {
		repo := newSettingsRepo()
		repo.saveErr = errBoom
		s := billing.NewTemplateSelector(fakeSession{userID: "user-1"}, repo, zerolog.Nop())
		_, err := s.Save(ctx, 2)
		assert.ErrorIs(t, err, errBoom)
	})
}
