// Package chrome implementa billing.Rasterizer con Chrome headless (chromedp).
//
// Un único navegador se comparte entre exportaciones; cada exportación abre su propia
// pestaña (la superficie fuera de pantalla) y la cierra al terminar, falle o no.
package chrome

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/jhoicas/invoice-docs/internal/application/billing"
)

// MinScale factor de escala mínimo para calidad de impresión.
const MinScale = 2.0

// Expresión que se cumple cuando el documento y todas sus imágenes terminaron de
// cargar (con éxito o con error).
const loadedExpr = `document.readyState === "complete" &&
	Array.from(document.images).every(function (img) { return img.complete; })`

const fontsReadyExpr = `document.fonts ? document.fonts.ready.then(function () { return true; }) : true`

// Options configuración del rasterizador.
type Options struct {
	ExecPath    string        // vacío = Chrome del PATH
	Scale       float64       // factor de escala del dispositivo (≥ 2)
	MaxTabs     int           // pestañas simultáneas
	LoadTimeout time.Duration // 0 = sin límite de espera de carga
}

// Rasterizer renderiza HTML en una pestaña de Chrome headless y lo captura en PNG.
type Rasterizer struct {
	opts Options
	sem  *semaphore.Weighted
	log  zerolog.Logger

	mu            sync.Mutex
	allocCtx      context.Context
	cancelAlloc   context.CancelFunc
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
}

// NewRasterizer construye el rasterizador. El navegador se inicia en la primera
// exportación.
func NewRasterizer(opts Options, log zerolog.Logger) *Rasterizer {
	if opts.Scale < MinScale {
		opts.Scale = MinScale
	}
	if opts.MaxTabs <= 0 {
		opts.MaxTabs = 4
	}
	return &Rasterizer{
		opts: opts,
		sem:  semaphore.NewWeighted(int64(opts.MaxTabs)),
		log:  log,
	}
}

// RenderToRaster carga el HTML en una pestaña con viewport de una página, espera a
// que documento, imágenes y fuentes estén listos y captura la página completa a la
// escala configurada.
func (r *Rasterizer) RenderToRaster(ctx context.Context, html string, size billing.PageSize) (*billing.RasterImage, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("chrome: esperar pestaña libre: %w", err)
	}
	defer r.sem.Release(1)

	browserCtx, err := r.browser()
	if err != nil {
		return nil, err
	}

	// ── Pestaña propia; se cierra en todos los caminos ────────────────────────
	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	if r.opts.LoadTimeout > 0 {
		var cancelTimeout context.CancelFunc
		tabCtx, cancelTimeout = context.WithTimeout(tabCtx, r.opts.LoadTimeout)
		defer cancelTimeout()
	}

	var (
		shot       []byte
		loaded     bool
		fontsReady bool
	)
	err = chromedp.Run(tabCtx,
		chromedp.EmulateViewport(int64(size.ViewportWidth), int64(size.ViewportHeight), chromedp.EmulateScale(r.opts.Scale)),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return fmt.Errorf("obtener frame: %w", err)
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.Poll(loadedExpr, &loaded, chromedp.WithPollingInterval(50*time.Millisecond)),
		chromedp.Evaluate(fontsReadyExpr, &fontsReady, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.FullScreenshot(&shot, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome: render: %w", err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("chrome: captura inválida: %w", err)
	}

	r.log.Debug().
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Float64("scale", r.opts.Scale).
		Msg("chrome: documento capturado")

	return &billing.RasterImage{
		PNG:    shot,
		Width:  cfg.Width,
		Height: cfg.Height,
		Scale:  r.opts.Scale,
	}, nil
}

// browser inicia el navegador compartido si aún no existe.
func (r *Rasterizer) browser() (context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browserCtx != nil && r.browserCtx.Err() == nil {
		return r.browserCtx, nil
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if r.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.opts.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, args ...interface{}) {
		r.log.Debug().Msgf(format, args...)
	}))
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("chrome: iniciar navegador: %w", err)
	}

	r.allocCtx, r.cancelAlloc = allocCtx, cancelAlloc
	r.browserCtx, r.cancelBrowser = browserCtx, cancelBrowser
	r.log.Info().Str("exec_path", r.opts.ExecPath).Int("max_tabs", r.opts.MaxTabs).Msg("chrome: navegador iniciado")
	return browserCtx, nil
}

// Close cierra el navegador compartido.
func (r *Rasterizer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancelBrowser != nil {
		r.cancelBrowser()
		r.cancelAlloc()
		r.browserCtx, r.cancelBrowser = nil, nil
		r.allocCtx, r.cancelAlloc = nil, nil
	}
}
