package document

import "io"

// Variante dividida: encabezado en dos mitades (título/logo y datos de la factura)
// y direcciones en columnas con borde de acento.
const splitTemplate = `{{define "split"}}{{template "head" .}}
<body>
<div class="invoice-container split-layout template-{{.Template.ID}}" data-layout="split">
  <header class="split-header">
    <div class="split-left">
      {{template "logo" .}}
      {{template "title" .}}
    </div>
    <div class="split-right">
      {{template "meta" .}}
    </div>
  </header>
  <div class="split-parties">
    {{template "party" .Company}}
    {{template "party" .Client}}
  </div>
  {{template "items" .}}
  {{template "totals" .}}
  {{template "notes" .}}
  {{template "footer" .}}
</div>
</body>
</html>{{end}}`

func renderSplit(w io.Writer, v view) error {
	return templates.ExecuteTemplate(w, "split", v)
}
