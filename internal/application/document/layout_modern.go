package document

import "io"

// Variante moderna: hero con degradado, tarjetas para emisor/destinatario y
// tarjeta destacada con el monto adeudado.
const modernTemplate = `{{define "modern"}}{{template "head" .}}
<body>
<div class="invoice-container modern-layout template-{{.Template.ID}}" data-layout="modern">
  <header class="modern-hero header">
    <div class="brand">
      {{template "logo" .}}
      {{template "title" .}}
    </div>
    {{template "meta" .}}
  </header>
  <div class="cards">
    <div class="card">{{template "party" .Company}}</div>
    <div class="card">{{template "party" .Client}}</div>
  </div>
  <div class="modern-items">{{template "items" .}}</div>
  {{template "totals" .}}
  <div class="amount-due-card">
    <div class="label">Amount Due</div>
    <div class="value">{{.AmountDue}}</div>
  </div>
  {{template "notes" .}}
  {{template "footer" .}}
</div>
</body>
</html>{{end}}`

func renderModern(w io.Writer, v view) error {
	return templates.ExecuteTemplate(w, "modern", v)
}
