package document

import "io"

// Variante ejecutiva: banda superior con degradado, regla de acento y área de firma.
const executiveTemplate = `{{define "executive"}}{{template "head" .}}
<body>
<div class="invoice-container executive-layout template-{{.Template.ID}}" data-layout="executive">
  <header class="executive-banner">
    <div class="brand">
      {{template "logo" .}}
      {{template "title" .}}
    </div>
    {{template "meta" .}}
  </header>
  <div class="executive-rule"></div>
  <div class="parties">
    {{template "party" .Company}}
    {{template "party" .Client}}
  </div>
  {{template "items" .}}
  {{template "totals" .}}
  {{template "notes" .}}
  <div class="signature">Authorized Signature</div>
  {{template "footer" .}}
</div>
</body>
</html>{{end}}`

func renderExecutive(w io.Writer, v view) error {
	return templates.ExecuteTemplate(w, "executive", v)
}
