package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-docs/internal/application/billing"
)

func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = string(b)
	}
	return out
}

func TestZip_EntradasYContenido(t *testing.T) {
	z := &ZipBuilder{now: func() time.Time { return time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC) }}
	data, err := z.Zip([]billing.ArchiveFile{
		{Name: "invoice-1.pdf", Content: []byte("%PDF-1")},
		{Name: "failures.txt", Content: []byte("inv-2: not found\n")},
	})
	require.NoError(t, err)

	files := readZip(t, data)
	assert.Equal(t, "%PDF-1", files["invoice-1.pdf"])
	assert.Equal(t, "inv-2: not found\n", files["failures.txt"])
}

func TestZip_NombresRepetidosYRutas(t *testing.T) {
	data, err := NewZipBuilder().Zip([]billing.ArchiveFile{
		{Name: "invoice-7.pdf", Content: []byte("a")},
		{Name: "invoice-7.pdf", Content: []byte("b")},
		{Name: "../../etc/passwd", Content: []byte("c")},
	})
	require.NoError(t, err)

	files := readZip(t, data)
	assert.Equal(t, "a", files["invoice-7.pdf"])
	assert.Equal(t, "b", files["invoice-7 (2).pdf"])
	assert.Equal(t, "c", files["passwd"], "las rutas se reducen al nombre base")
}

func TestZip_Vacio(t *testing.T) {
	data, err := NewZipBuilder().Zip(nil)
	require.NoError(t, err)
	assert.Empty(t, readZip(t, data))
}
