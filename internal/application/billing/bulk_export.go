package billing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/invoice-docs/internal/domain"
)

// FailuresFilename entrada del ZIP con las facturas que no se pudieron exportar.
const FailuresFilename = "failures.txt"

// BulkOptions límites de la exportación masiva.
type BulkOptions struct {
	MaxInvoices int // facturas por solicitud
	Concurrency int // exportaciones simultáneas
}

// BulkFailure factura que no se pudo exportar.
type BulkFailure struct {
	InvoiceID string
	Reason    string
}

// BulkResult resultado de una exportación masiva.
type BulkResult struct {
	ExportID string
	Filename string
	Archive  []byte
	Exported int
	Failures []BulkFailure
}

// BulkExportUseCase exporta varias facturas a un único ZIP. El fallo de una factura
// se reporta en failures.txt sin abortar las demás.
type BulkExportUseCase struct {
	loader   *DocumentLoader
	pdf      *PDFUseCase
	archiver Archiver
	opts     BulkOptions
	log      zerolog.Logger
}

// NewBulkExportUseCase construye el caso de uso.
func NewBulkExportUseCase(loader *DocumentLoader, pdf *PDFUseCase, archiver Archiver, opts BulkOptions, log zerolog.Logger) *BulkExportUseCase {
	if opts.MaxInvoices <= 0 {
		opts.MaxInvoices = 50
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 2
	}
	return &BulkExportUseCase{loader: loader, pdf: pdf, archiver: archiver, opts: opts, log: log}
}

// Export genera el ZIP con las facturas del usuario.
//
// Retorna:
//   - domain.ErrInvalidInput si la lista está vacía o supera el límite.
//   - error si ninguna factura se pudo exportar o falla el empaquetado.
func (uc *BulkExportUseCase) Export(ctx context.Context, userID string, invoiceIDs []string) (*BulkResult, error) {
	ids := dedupe(invoiceIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos una factura", domain.ErrInvalidInput)
	}
	if len(ids) > uc.opts.MaxInvoices {
		return nil, fmt.Errorf("%w: máximo %d facturas por exportación", domain.ErrInvalidInput, uc.opts.MaxInvoices)
	}

	exportID := uuid.NewString()
	logger := uc.log.With().Str("export_id", exportID).Str("user_id", userID).Logger()

	// ── 1. Exportar en paralelo con límite ────────────────────────────────────
	var (
		mu       sync.Mutex
		pdfs     = make([]*ExportedPDF, len(ids))
		failures []BulkFailure
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.opts.Concurrency)
	for i, id := range ids {
		g.Go(func() error {
			out, err := uc.exportOne(gctx, userID, id)
			if err != nil {
				logger.Warn().Err(err).Str("invoice_id", id).Msg("exportación masiva: factura omitida")
				mu.Lock()
				failures = append(failures, BulkFailure{InvoiceID: id, Reason: failureReason(err)})
				mu.Unlock()
				return nil
			}
			pdfs[i] = out
			return nil
		})
	}
	_ = g.Wait()

	// ── 2. Armar el ZIP en el orden solicitado ────────────────────────────────
	files := make([]ArchiveFile, 0, len(ids)+1)
	for _, p := range pdfs {
		if p != nil {
			files = append(files, ArchiveFile{Name: p.Filename, Content: p.Content})
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("exportación masiva: ninguna factura se pudo exportar (%d fallos)", len(failures))
	}
	exported := len(files)

	sort.Slice(failures, func(a, b int) bool { return failures[a].InvoiceID < failures[b].InvoiceID })
	if len(failures) > 0 {
		files = append(files, ArchiveFile{Name: FailuresFilename, Content: []byte(failuresReport(failures))})
	}

	archive, err := uc.archiver.Zip(files)
	if err != nil {
		return nil, fmt.Errorf("exportación masiva: empaquetar: %w", err)
	}

	logger.Info().Int("exported", exported).Int("failed", len(failures)).Msg("exportación masiva completada")
	return &BulkResult{
		ExportID: exportID,
		Filename: "invoices-" + exportID[:8] + ".zip",
		Archive:  archive,
		Exported: exported,
		Failures: failures,
	}, nil
}

func (uc *BulkExportUseCase) exportOne(ctx context.Context, userID, invoiceID string) (*ExportedPDF, error) {
	req, err := uc.loader.Load(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.ExportInvoicePDF(ctx, req)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not found"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrRenderFailed):
		return "render failed"
	case errors.Is(err, domain.ErrComposeFailed):
		return "pdf composition failed"
	default:
		return "export failed"
	}
}

func failuresReport(failures []BulkFailure) string {
	var b strings.Builder
	for _, f := range failures {
		fmt.Fprintf(&b, "%s: %s\n", f.InvoiceID, f.Reason)
	}
	return b.String()
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
