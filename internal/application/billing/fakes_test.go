package billing_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-docs/internal/application/billing"
	"github.com/jhoicas/invoice-docs/internal/domain/entity"
)

var errBoom = errors.New("boom")

// ── Sesión ──────────────────────────────────────────────────────────────────

type fakeSession struct {
	userID string
	err    error
}

func (f fakeSession) CurrentUserID(context.Context) (string, error) { return f.userID, f.err }

// ── Repositorios ────────────────────────────────────────────────────────────

type fakeSettingsRepo struct {
	mu       sync.Mutex
	rows     map[string]*entity.UserSettings
	getErr   error
	saveErr  error
	upserted map[string]int
}

func newSettingsRepo(rows ...*entity.UserSettings) *fakeSettingsRepo {
	r := &fakeSettingsRepo{rows: map[string]*entity.UserSettings{}, upserted: map[string]int{}}
	for _, s := range rows {
		r.rows[s.UserID] = s
	}
	return r
}

func (r *fakeSettingsRepo) GetByUserID(_ context.Context, userID string) (*entity.UserSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.rows[userID], nil
}

func (r *fakeSettingsRepo) UpsertSelectedTemplate(_ context.Context, userID string, templateID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.upserted[userID] = templateID
	return nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	items    map[string][]*entity.InvoiceItem
	err      error
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.invoices[id], nil
}

func (r *fakeInvoiceRepo) GetItemsByInvoiceID(_ context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	return r.items[invoiceID], nil
}

type fakeClientRepo struct{ clients map[string]*entity.Client }

func (r *fakeClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	return r.clients[id], nil
}

type fakeCompanyRepo struct{ companies map[string]*entity.Company }

func (r *fakeCompanyRepo) GetByUserID(_ context.Context, userID string) (*entity.Company, error) {
	return r.companies[userID], nil
}

// ── Pipeline ────────────────────────────────────────────────────────────────

type fakeRasterizer struct {
	mu      sync.Mutex
	calls   int
	lastDoc string
	err     error
	panics  bool
	failOn  string // falla si el HTML contiene este texto
}

func (f *fakeRasterizer) RenderToRaster(_ context.Context, html string, page billing.PageSize) (*billing.RasterImage, error) {
	f.mu.Lock()
	f.calls++
	f.lastDoc = html
	f.mu.Unlock()
	if f.panics {
		panic("tab crashed")
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.failOn != "" && strings.Contains(html, f.failOn) {
		return nil, errBoom
	}
	return &billing.RasterImage{
		PNG:    []byte("\x89PNG"),
		Width:  page.ViewportWidth * 2,
		Height: page.ViewportHeight * 2,
		Scale:  2,
	}, nil
}

type fakeComposer struct {
	err  error
	meta billing.DocumentMeta
}

func (f *fakeComposer) Compose(_ context.Context, images []billing.RasterImage, _ billing.PageSize, meta billing.DocumentMeta) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.meta = meta
	return append([]byte("%PDF-"), images[0].PNG...), nil
}

type fakeQR struct {
	content string
	err     error
}

func (f *fakeQR) DataURI(content string) (string, error) {
	f.content = content
	if f.err != nil {
		return "", f.err
	}
	return "data:image/png;base64,UVI=", nil
}

type fakeAssets struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (f *fakeAssets) Embed(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return "data:image/png;base64,TE9HTw==", nil
}

type fakeSink struct {
	calls    int
	filename string
	content  []byte
	err      error
}

func (f *fakeSink) Deliver(filename string, content []byte) error {
	f.calls++
	f.filename = filename
	f.content = content
	return f.err
}

type fakeRecorder struct {
	mu       sync.Mutex
	outcomes []string
	degraded []string
}

func (f *fakeRecorder) ObserveExport(outcome string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes = append(f.outcomes, outcome)
}

func (f *fakeRecorder) ObserveDegraded(reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.degraded = append(f.degraded, reason)
}

type fakeArchiver struct{ files []billing.ArchiveFile }

func (f *fakeArchiver) Zip(files []billing.ArchiveFile) ([]byte, error) {
	f.files = files
	return []byte("PK"), nil
}

// ── Datos de ejemplo ────────────────────────────────────────────────────────

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleInvoice(id, userID string) *entity.Invoice {
	return &entity.Invoice{
		ID:            id,
		UserID:        userID,
		ClientID:      "client-1",
		InvoiceNumber: "INV-001",
		IssueDate:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Currency:      "USD",
		Status:        entity.InvoiceStatusSent,
		TaxRate:       d("10"),
	}
}

func sampleItems() []*entity.InvoiceItem {
	return []*entity.InvoiceItem{
		{ProductName: "Design", Quantity: d("10"), Rate: d("50")},
		{ProductName: "Hosting", Quantity: d("2"), Rate: d("25")},
	}
}

func sampleRequest() billing.DocumentRequest {
	return billing.DocumentRequest{
		Invoice: sampleInvoice("inv-1", "user-1"),
		Client:  &entity.Client{Name: "Acme Corp"},
		Items:   sampleItems(),
		Company: &entity.Company{Name: "Studio LLC", LogoURL: "https://cdn.example.com/logo.png"},
	}
}

type pipeline struct {
	uc         *billing.PDFUseCase
	settings   *fakeSettingsRepo
	rasterizer *fakeRasterizer
	composer   *fakeComposer
	qr         *fakeQR
	assets     *fakeAssets
	recorder   *fakeRecorder
}

func newPipeline(sess billing.SessionProvider, settings *fakeSettingsRepo) *pipeline {
	p := &pipeline{
		settings:   settings,
		rasterizer: &fakeRasterizer{},
		composer:   &fakeComposer{},
		qr:         &fakeQR{},
		assets:     &fakeAssets{},
		recorder:   &fakeRecorder{},
	}
	selector := billing.NewTemplateSelector(sess, settings, zerolog.Nop())
	p.uc = billing.NewPDFUseCase(selector, p.rasterizer, p.composer, p.qr, p.assets, p.recorder, billing.PDFOptions{
		PublicBaseURL: "https://app.example.com/",
		BrandName:     "InvoiceDocs",
		BrandLogoURL:  "https://cdn.example.com/brand.png",
	}, zerolog.Nop())
	return p
}
