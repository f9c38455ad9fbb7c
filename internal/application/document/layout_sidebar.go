package document

import "io"

// Variante con barra lateral: logo, emisor, destinatario y monto adeudado a la
// izquierda; el contenido principal a la derecha.
const sidebarTemplate = `{{define "sidebar"}}{{template "head" .}}
<body>
<div class="invoice-container sidebar-layout template-{{.Template.ID}}" data-layout="sidebar">
  <aside class="sidebar">
    {{template "logo" .}}
    {{template "party" .Company}}
    {{template "party" .Client}}
    <div class="sidebar-amount">
      <div class="label">Amount Due</div>
      <div class="value">{{.AmountDue}}</div>
    </div>
  </aside>
  <main class="main-content">
    <header class="header">
      <div class="brand">{{template "title" .}}</div>
      {{template "meta" .}}
    </header>
    {{template "items" .}}
    {{template "totals" .}}
    {{template "notes" .}}
    {{template "footer" .}}
  </main>
</div>
</body>
</html>{{end}}`

func renderSidebar(w io.Writer, v view) error {
	return templates.ExecuteTemplate(w, "sidebar", v)
}
