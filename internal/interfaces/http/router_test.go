package http_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-docs/internal/application/billing"
	"github.com/jhoicas/invoice-docs/internal/application/dto"
	"github.com/jhoicas/invoice-docs/internal/application/session"
	"github.com/jhoicas/invoice-docs/internal/domain/entity"
	"github.com/jhoicas/invoice-docs/internal/domain/invoicetemplate"
	"github.com/jhoicas/invoice-docs/internal/infrastructure/archive"
	"github.com/jhoicas/invoice-docs/internal/infrastructure/metrics"
	"github.com/jhoicas/invoice-docs/internal/infrastructure/qr"
	apphttp "github.com/jhoicas/invoice-docs/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	invoices  map[string]*entity.Invoice
	items     map[string][]*entity.InvoiceItem
	clients   map[string]*entity.Client
	companies map[string]*entity.Company
	settings  map[string]*entity.UserSettings
}

func (s *memStore) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	return s.invoices[id], nil
}

func (s *memStore) GetItemsByInvoiceID(_ context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	return s.items[invoiceID], nil
}

type clientStore struct{ s *memStore }

func (c clientStore) GetByID(_ context.Context, id string) (*entity.Client, error) {
	return c.s.clients[id], nil
}

type companyStore struct{ s *memStore }

func (c companyStore) GetByUserID(_ context.Context, userID string) (*entity.Company, error) {
	return c.s.companies[userID], nil
}

type settingsStore struct{ s *memStore }

func (c settingsStore) GetByUserID(_ context.Context, userID string) (*entity.UserSettings, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return c.s.settings[userID], nil
}

func (c settingsStore) UpsertSelectedTemplate(_ context.Context, userID string, templateID int) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	row, ok := c.s.settings[userID]
	if !ok {
		row = &entity.UserSettings{UserID: userID}
		c.s.settings[userID] = row
	}
	row.SelectedTemplate = templateID
	return nil
}

type stubRasterizer struct{ err error }

func (r *stubRasterizer) RenderToRaster(_ context.Context, _ string, page billing.PageSize) (*billing.RasterImage, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &billing.RasterImage{PNG: []byte("\x89PNG"), Width: page.ViewportWidth * 2, Height: page.ViewportHeight * 2, Scale: 2}, nil
}

type stubComposer struct{}

func (stubComposer) Compose(context.Context, []billing.RasterImage, billing.PageSize, billing.DocumentMeta) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// App de prueba
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app        *fiber.App
	store      *memStore
	rasterizer *stubRasterizer
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := &memStore{
		invoices: map[string]*entity.Invoice{
			"inv-1": {
				ID: "inv-1", UserID: testUserID, ClientID: "client-1", InvoiceNumber: "INV-001",
				IssueDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Currency: "USD",
				Status: entity.InvoiceStatusSent, TaxRate: d("10"),
			},
			"inv-draft": {
				ID: "inv-draft", UserID: testUserID, InvoiceNumber: "INV-002",
				Currency: "USD", Status: entity.InvoiceStatusDraft,
			},
		},
		items: map[string][]*entity.InvoiceItem{
			"inv-1": {{ProductName: "Design", Quantity: d("10"), Rate: d("50")}},
		},
		clients:   map[string]*entity.Client{"client-1": {ID: "client-1", Name: "Acme Corp"}},
		companies: map[string]*entity.Company{testUserID: {UserID: testUserID, Name: "Studio LLC"}},
		settings:  map[string]*entity.UserSettings{testUserID: {UserID: testUserID, SubscriptionTier: entity.TierFree}},
	}
	rasterizer := &stubRasterizer{}
	log := zerolog.Nop()

	selector := billing.NewTemplateSelector(session.ContextProvider{}, settingsStore{store}, log)
	loader := billing.NewDocumentLoader(store, clientStore{store}, companyStore{store}, settingsStore{store})
	recorder := metrics.NewRecorder("test")
	pdfUC := billing.NewPDFUseCase(selector, rasterizer, stubComposer{}, qr.NewGenerator(128), nil, recorder,
		billing.PDFOptions{PublicBaseURL: "https://app.example.com", BrandName: "InvoiceDocs"}, log)
	bulkUC := billing.NewBulkExportUseCase(loader, pdfUC, archive.NewZipBuilder(), billing.BulkOptions{MaxInvoices: 5}, log)

	app := fiber.New()
	app.Use(apphttp.RequestMetrics(recorder))
	apphttp.Router(app, apphttp.RouterDeps{
		Selector:  selector,
		Loader:    loader,
		PDF:       pdfUC,
		Bulk:      bulkUC,
		Metrics:   recorder,
		Service:   "invoice-docs-test",
		JWTSecret: testJWTSecret,
	})
	return &testEnv{app: app, store: store, rasterizer: rasterizer}
}

func (e *testEnv) do(t *testing.T, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return raw
}

func firstPremium(t *testing.T) int {
	t.Helper()
	premium := invoicetemplate.ByCategory(invoicetemplate.CategoryPremium)
	require.NotEmpty(t, premium)
	return premium[0].ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Health y métricas
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.HealthResponse
	require.NoError(t, json.Unmarshal(readBody(t, resp), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "invoice-docs-test", body.Service)
}

type downDB struct{}

func (downDB) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealth_BaseCaida_Retorna503(t *testing.T) {
	app := fiber.New()
	app.Get("/health", apphttp.Health("svc", downDB{}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestMetrics_ExponeContadores(t *testing.T) {
	env := newTestEnv(t)
	readBody(t, env.do(t, http.MethodGet, "/api/invoices/inv-1/pdf", bearer(t, testUserID), nil))

	resp := env.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := string(readBody(t, resp))
	assert.Contains(t, body, `test_invoice_exports_total{outcome="success"} 1`)
	assert.Contains(t, body, "test_http_requests_total")
}

// ──────────────────────────────────────────────────────────────────────────────
// Plantillas
// ──────────────────────────────────────────────────────────────────────────────

func TestTemplates_SinToken_Retorna401(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/templates", "", nil)
	readBody(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTemplates_List(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/templates", bearer(t, testUserID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.TemplateListResponse
	require.NoError(t, json.Unmarshal(readBody(t, resp), &body))
	assert.Equal(t, len(invoicetemplate.All()), body.Total)
	assert.Len(t, body.Templates, body.Total)
}

func TestTemplates_ListPorCategoria(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/templates?category=premium", bearer(t, testUserID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.TemplateListResponse
	require.NoError(t, json.Unmarshal(readBody(t, resp), &body))
	require.NotEmpty(t, body.Templates)
	for _, tpl := range body.Templates {
		assert.True(t, tpl.Premium)
	}

	resp = env.do(t, http.MethodGet, "/api/templates?category=gold", bearer(t, testUserID), nil)
	readBody(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTemplates_GetIDDesconocidoDevuelveDefault(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/templates/9999", bearer(t, testUserID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.TemplateResponse
	require.NoError(t, json.Unmarshal(readBody(t, resp), &body))
	assert.Equal(t, invoicetemplate.DefaultID, body.ID)
}

func TestTemplates_SelectedSinPreferenciaDevuelveDefault(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/templates/selected", bearer(t, testUserID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.TemplateResponse
	require.NoError(t, json.Unmarshal(readBody(t, resp), &body))
	assert.Equal(t, invoicetemplate.DefaultID, body.ID)
}

func TestTemplates_SaveBasica(t *testing.T) {
	env := newTestEnv(t)
	basic := invoicetemplate.ByCategory(invoicetemplate.CategoryBasic)
	target := basic[len(basic)-1].ID

	resp := env.do(t, http.MethodPut, "/api/settings/template", bearer(t, testUserID), dto.SaveTemplateRequest{TemplateID: target})
	readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, target, env.store.settings[testUserID].SelectedTemplate)

	resp = env.do(t, http.MethodGet, "/api/templates/selected", bearer(t, testUserID), nil)
	var body dto.TemplateResponse
	require.NoError(t, json.Unmarshal(readBody(t, resp), &body))
	assert.Equal(t, target, body.ID)
}

func TestTemplates_SavePremiumSinPlan_Retorna403(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPut, "/api/settings/template", bearer(t, testUserID), dto.SaveTemplateRequest{TemplateID: firstPremium(t)})
	readBody(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestTemplates_SaveIDDesconocido_Retorna400(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPut, "/api/settings/template", bearer(t, testUserID), dto.SaveTemplateRequest{TemplateID: 9999})
	readBody(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos
// ──────────────────────────────────────────────────────────────────────────────

func TestPDF_Descarga(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/invoices/inv-1/pdf", bearer(t, testUserID), nil)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="invoice-INV-001.pdf"`, resp.Header.Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}

func TestPDF_FacturaDeOtroUsuario_Retorna403(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/invoices/inv-1/pdf", bearer(t, testOtherUser), nil)
	readBody(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPDF_FacturaInexistente_Retorna404(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/invoices/nope/pdf", bearer(t, testUserID), nil)
	readBody(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPDF_FalloDeCaptura_Retorna500Generico(t *testing.T) {
	env := newTestEnv(t)
	env.rasterizer.err = errors.New("chrome no disponible")

	resp := env.do(t, http.MethodGet, "/api/invoices/inv-1/pdf", bearer(t, testUserID), nil)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(body), "DOWNLOAD_FAILED")
	assert.NotContains(t, string(body), "chrome", "el detalle técnico no llega al cliente")
	assert.Empty(t, resp.Header.Get("Content-Disposition"))
}

func TestHTML_VistaPrevia(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/invoices/inv-1/html", bearer(t, testUserID), nil)
	body := string(readBody(t, resp))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
	assert.Contains(t, body, "INV-001")
	assert.Contains(t, body, "Acme Corp")
}

func TestPublic_SinToken(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/public/invoices/inv-1", "", nil)
	body := string(readBody(t, resp))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	assert.Contains(t, body, "INV-001")
}

func TestPublic_BorradorNoSePublica(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/public/invoices/inv-draft", "", nil)
	readBody(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExport_ZipConFallos(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/invoices/export", bearer(t, testUserID),
		dto.BulkExportRequest{InvoiceIDs: []string{"inv-1", "missing"}})
	body := readBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get("Content-Type"))
	assert.Equal(t, "1", resp.Header.Get("X-Export-Failed"))
	assert.NotEmpty(t, resp.Header.Get("X-Export-Id"))

	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"invoice-INV-001.pdf", billing.FailuresFilename}, names)
}

func TestExport_ListaVacia_Retorna400(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/invoices/export", bearer(t, testUserID), dto.BulkExportRequest{})
	readBody(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func renderBody(templateID int) dto.RenderDocumentRequest {
	return dto.RenderDocumentRequest{
		TemplateID: templateID,
		Invoice: dto.DocumentInvoice{
			InvoiceNumber: "Q-77",
			IssueDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Currency:      "USD",
			TaxRate:       d("5"),
		},
		Client: dto.DocumentParty{Name: "Walk-in"},
		Items:  []dto.DocumentItem{{ProductName: "Coffee", Quantity: d("2"), Rate: d("3.5")}},
	}
}

func TestRender_DocumentoSinPersistir(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/documents/render", bearer(t, testUserID), renderBody(0))
	readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="invoice-Q-77.pdf"`, resp.Header.Get("Content-Disposition"))
}

func TestRender_PlantillaPremiumSinPlan_Retorna403(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/documents/render", bearer(t, testUserID), renderBody(firstPremium(t)))
	readBody(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRender_PlantillaPremiumConPlan(t *testing.T) {
	env := newTestEnv(t)
	env.store.settings[testUserID].SubscriptionTier = entity.TierPremium

	resp := env.do(t, http.MethodPost, "/api/documents/render", bearer(t, testUserID), renderBody(firstPremium(t)))
	readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRender_SinNumero_Retorna400(t *testing.T) {
	env := newTestEnv(t)
	body := renderBody(0)
	body.Invoice.InvoiceNumber = ""

	resp := env.do(t, http.MethodPost, "/api/documents/render", bearer(t, testUserID), body)
	readBody(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
