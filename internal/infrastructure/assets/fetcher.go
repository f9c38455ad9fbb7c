// Package assets descarga imágenes remotas (logos) y las incrusta como data URI
// para que el render no dependa de la red.
package assets

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
)

// MaxBytes tamaño máximo de una imagen incrustada.
const MaxBytes = 2 << 20

// Fetcher implementa billing.AssetEmbedder.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewFetcher construye el descargador; timeout ≤ 0 usa 5 s.
func NewFetcher(client *http.Client, timeout time.Duration) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Fetcher{client: client, timeout: timeout}
}

// Embed descarga url y devuelve data:{mime};base64,... Solo acepta http(s) y
// respuestas image/*.
func (f *Fetcher) Embed(ctx context.Context, url string) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("assets: esquema no soportado en %q", url)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("assets: crear petición: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("assets: descargar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assets: respuesta %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("assets: leer cuerpo: %w", err)
	}
	if len(body) > MaxBytes {
		return "", fmt.Errorf("assets: imagen supera %d bytes", MaxBytes)
	}

	mediaType := contentType(resp.Header.Get("Content-Type"), body)
	if !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("assets: tipo de contenido %q no es imagen", mediaType)
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(body), nil
}

func contentType(header string, body []byte) string {
	if mt, _, err := mime.ParseMediaType(header); err == nil && mt != "" && mt != "application/octet-stream" {
		return mt
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(body))
	return mt
}
