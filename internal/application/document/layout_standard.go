package document

import "io"

// Disposición básica: encabezado (izquierda, centro o derecha según la plantilla),
// emisor/destinatario en dos columnas, tabla, totales, notas y pie.
const standardTemplate = `{{define "standard"}}{{template "head" .}}
<body>
<div class="invoice-container template-{{.Template.ID}} layout-{{.Template.Layout}}" data-layout="standard">
  <header class="header">
    <div class="brand">
      {{template "logo" .}}
      {{template "title" .}}
    </div>
    {{template "meta" .}}
  </header>
  <div class="parties">
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

func renderStandard(w io.Writer, v view) error {
	return templates.ExecuteTemplate(w, "standard", v)
}
