package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/invoice-docs/internal/domain"
	"github.com/jhoicas/invoice-docs/internal/domain/entity"
	"github.com/jhoicas/invoice-docs/internal/domain/repository"
)

// DocumentRequest datos que recibe el pipeline: factura, cliente, ítems, empresa
// emisora y plan de suscripción. TemplateID > 0 fuerza una plantilla; 0 usa la
// seleccionada por el usuario. OwnerID se usa cuando no hay sesión (vista pública).
type DocumentRequest struct {
	Invoice          *entity.Invoice
	Client           *entity.Client
	Items            []*entity.InvoiceItem
	Company          *entity.Company
	SubscriptionTier string
	TemplateID       int
	OwnerID          string
}

// DocumentLoader arma un DocumentRequest a partir de los repositorios.
type DocumentLoader struct {
	invoiceRepo  repository.InvoiceRepository
	clientRepo   repository.ClientRepository
	companyRepo  repository.CompanyRepository
	settingsRepo repository.SettingsRepository
}

// NewDocumentLoader construye el cargador inyectando sus dependencias.
func NewDocumentLoader(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	companyRepo repository.CompanyRepository,
	settingsRepo repository.SettingsRepository,
) *DocumentLoader {
	return &DocumentLoader{
		invoiceRepo:  invoiceRepo,
		clientRepo:   clientRepo,
		companyRepo:  companyRepo,
		settingsRepo: settingsRepo,
	}
}

// Load recupera la factura de un usuario autenticado.
//
// Retorna:
//   - domain.ErrNotFound   si la factura no existe.
//   - domain.ErrForbidden  si la factura pertenece a otro usuario.
func (l *DocumentLoader) Load(ctx context.Context, userID, invoiceID string) (DocumentRequest, error) {
	inv, err := l.invoice(ctx, invoiceID)
	if err != nil {
		return DocumentRequest{}, err
	}
	if inv.UserID != userID {
		return DocumentRequest{}, domain.ErrForbidden
	}
	return l.complete(ctx, inv)
}

// LoadPublic recupera una factura sin sesión (destino del código QR). Las facturas
// en borrador no se publican.
func (l *DocumentLoader) LoadPublic(ctx context.Context, invoiceID string) (DocumentRequest, error) {
	inv, err := l.invoice(ctx, invoiceID)
	if err != nil {
		return DocumentRequest{}, err
	}
	if inv.Status == entity.InvoiceStatusDraft {
		return DocumentRequest{}, domain.ErrNotFound
	}
	req, err := l.complete(ctx, inv)
	if err != nil {
		return DocumentRequest{}, err
	}
	req.OwnerID = inv.UserID
	return req, nil
}

func (l *DocumentLoader) invoice(ctx context.Context, invoiceID string) (*entity.Invoice, error) {
	if invoiceID == "" {
		return nil, fmt.Errorf("%w: id de factura requerido", domain.ErrInvalidInput)
	}
	inv, err := l.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("documento: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

func (l *DocumentLoader) complete(ctx context.Context, inv *entity.Invoice) (DocumentRequest, error) {
	// ── 1. Cliente ────────────────────────────────────────────────────────────
	client, err := l.clientRepo.GetByID(ctx, inv.ClientID)
	if err != nil {
		return DocumentRequest{}, fmt.Errorf("documento: obtener cliente: %w", err)
	}
	if client == nil {
		// Un cliente borrado no impide generar el documento.
		client = &entity.Client{ID: inv.ClientID}
	}

	// ── 2. Empresa emisora ────────────────────────────────────────────────────
	company, err := l.companyRepo.GetByUserID(ctx, inv.UserID)
	if err != nil {
		return DocumentRequest{}, fmt.Errorf("documento: obtener empresa: %w", err)
	}
	if company == nil {
		company = &entity.Company{UserID: inv.UserID}
	}

	// ── 3. Ítems ──────────────────────────────────────────────────────────────
	items, err := l.invoiceRepo.GetItemsByInvoiceID(ctx, inv.ID)
	if err != nil {
		return DocumentRequest{}, fmt.Errorf("documento: obtener ítems: %w", err)
	}

	return DocumentRequest{
		Invoice:          inv,
		Client:           client,
		Items:            items,
		Company:          company,
		SubscriptionTier: l.SubscriptionTier(ctx, inv.UserID),
	}, nil
}

// SubscriptionTier plan del usuario; vacío si no se puede leer (se trata como
// gratuito y solo afecta la marca de agua).
func (l *DocumentLoader) SubscriptionTier(ctx context.Context, userID string) string {
	if l.settingsRepo == nil || userID == "" {
		return ""
	}
	s, err := l.settingsRepo.GetByUserID(ctx, userID)
	if err != nil || s == nil {
		return ""
	}
	return s.SubscriptionTier
}

// CompanyFor perfil de empresa del usuario; nil si no existe.
func (l *DocumentLoader) CompanyFor(ctx context.Context, userID string) (*entity.Company, error) {
	company, err := l.companyRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("documento: obtener empresa: %w", err)
	}
	return company, nil
}
