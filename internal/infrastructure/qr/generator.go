// Package qr genera los códigos QR de las facturas (skip2/go-qrcode).
package qr

import (
	"encoding/base64"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize lado del PNG en píxeles.
const DefaultSize = 256

// Generator implementa billing.QRGenerator.
type Generator struct {
	size  int
	level qrcode.RecoveryLevel
}

// NewGenerator construye el generador; size ≤ 0 usa DefaultSize.
func NewGenerator(size int) *Generator {
	if size <= 0 {
		size = DefaultSize
	}
	return &Generator{size: size, level: qrcode.Medium}
}

// DataURI codifica content y lo devuelve como data:image/png;base64.
func (g *Generator) DataURI(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("qr: contenido vacío")
	}
	png, err := qrcode.Encode(content, g.level, g.size)
	if err != nil {
		return "", fmt.Errorf("qr: codificar: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
