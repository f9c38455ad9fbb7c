package billing_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-docs/internal/application/billing"
	"github.com/jhoicas/invoice-docs/internal/domain"
)

func newBulk(t *testing.T, p *pipeline, opts billing.BulkOptions) (*billing.BulkExportUseCase, *fakeArchiver) {
	t.Helper()
	inv1 := sampleInvoice("inv-1", "user-1")
	inv2 := sampleInvoice("inv-2", "user-1")
	inv2.InvoiceNumber = "INV-002"
	bad := sampleInvoice("inv-bad", "user-1")
	bad.InvoiceNumber = "INV-BAD"
	other := sampleInvoice("inv-other", "user-2")

	archiver := &fakeArchiver{}
	uc := billing.NewBulkExportUseCase(newLoader(inv1, inv2, bad, other), p.uc, archiver, opts, zerolog.Nop())
	return uc, archiver
}

func TestBulkExport_FallosParcialesNoAbortan(t *testing.T) {
	p := newPipeline(fakeSession{userID: "user-1"}, newSettingsRepo())
	p.rasterizer.failOn = "INV-BAD"
	uc, archiver := newBulk(t, p, billing.BulkOptions{Concurrency: 2})

	res, err := uc.Export(context.Background(), "user-1", []string{"inv-1", "inv-bad", "inv-404", "inv-other", "inv-2", "inv-1"})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Exported)
	assert.NotEmpty(t, res.ExportID)
	assert.Contains(t, res.Filename, ".zip")

	require.Len(t, archiver.files, 3)
	assert.Equal(t, "invoice-INV-001.pdf", archiver.files[0].Name)
	assert.Equal(t, "invoice-INV-002.pdf", archiver.files[1].Name)
	assert.Equal(t, billing.FailuresFilename, archiver.files[2].Name)

	report := string(archiver.files[2].Content)
	assert.Contains(t, report, "inv-404: not found")
	assert.Contains(t, report, "inv-bad: render failed")
	assert.Contains(t, report, "inv-other: forbidden")
	assert.Len(t, res.Failures, 3)
}

func TestBulkExport_SinFallosNoAgregaReporte(t *testing.T) {
	p := newPipeline(fakeSession{userID: "user-1"}, newSettingsRepo())
	uc, archiver := newBulk(t, p, billing.BulkOptions{})

	res, err := uc.Export(context.Background(), "user-1", []string{"inv-1", "inv-2"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Exported)
	assert.Empty(t, res.Failures)
	for _, f := range archiver.files {
		assert.NotEqual(t, billing.FailuresFilename, f.Name)
	}
}

func TestBulkExport_Validaciones(t *testing.T) {
	p := newPipeline(fakeSession{userID: "user-1"}, newSettingsRepo())
	uc, _ := newBulk(t, p, billing.BulkOptions{MaxInvoices: 2})
	ctx := context.Background()

	_, err := uc.Export(ctx, "user-1", []string{" ", ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Export(ctx, "user-1", []string{"inv-1", "inv-2", "inv-bad"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Export(ctx, "user-1", []string{"inv-404"})
	assert.Error(t, err, "ninguna factura exportada")
}
