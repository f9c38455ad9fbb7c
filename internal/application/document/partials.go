package document

// Bloques compartidos por todas las variantes. Cada constructor compone su propio
// esqueleto a partir de estos bloques.
const partialsTemplate = `
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=794">
<title>Invoice {{.Number}}</title>
<style>
{{.CSS}}
</style>
</head>{{end}}

{{define "logo"}}{{if .CompanyLogo}}<img class="company-logo" src="{{.CompanyLogo}}" alt="Company logo">{{end}}{{end}}

{{define "title"}}<div class="invoice-title">{{.Title}}</div>
<div class="invoice-number">#{{.Number}}</div>{{end}}

{{define "meta"}}<div class="meta">
  <div><span class="label">Invoice No.</span> <strong>{{.Number}}</strong></div>
  {{if .IssueDate}}<div><span class="label">Issue Date</span> {{.IssueDate}}</div>{{end}}
  {{if .DueDate}}<div><span class="label">Due Date</span> {{.DueDate}}</div>{{end}}
  {{if .Status}}<div class="status-badge {{.StatusClass}}">{{.Status}}</div>{{end}}
</div>{{end}}

{{define "party"}}<div class="party">
  <h3>{{.Heading}}</h3>
  {{if .Name}}<div class="name">{{.Name}}</div>{{end}}
  {{if .CompanyName}}{{if ne .CompanyName .Name}}<div class="line company">{{.CompanyName}}</div>{{end}}{{end}}
  {{range .AddressLines}}<div class="line">{{.}}</div>{{end}}
  {{if .Email}}<div class="line">{{.Email}}</div>{{end}}
  {{if .Phone}}<div class="line">{{.Phone}}</div>{{end}}
  {{if .Website}}<div class="line">{{.Website}}</div>{{end}}
  {{if .TaxID}}<div class="line">Tax ID: {{.TaxID}}</div>{{end}}
</div>{{end}}

{{define "items"}}<table class="items-table">
  <thead>
    <tr>
      <th>#</th>
      <th>Description</th>
      <th class="num">Qty</th>
      <th class="num">Rate</th>
      <th class="num">Amount</th>
    </tr>
  </thead>
  <tbody>
    {{range .Items}}<tr>
      <td>{{.Index}}</td>
      <td><div class="item-name">{{.ProductName}}</div>{{if .Description}}<div class="item-description">{{.Description}}</div>{{end}}</td>
      <td class="num">{{.Quantity}}{{if .Unit}} {{.Unit}}{{end}}</td>
      <td class="num">{{.Rate}}</td>
      <td class="num">{{.Amount}}</td>
    </tr>
    {{end}}
  </tbody>
</table>{{end}}

{{define "totals"}}<div class="totals-wrapper"><div class="totals">
  {{range .Totals}}<div class="total-row {{.Class}}"><span class="total-label">{{.Label}}</span> <span class="total-value">{{.Value}}</span></div>
  {{end}}<div class="total-row {{.GrandTotal.Class}}"><span class="total-label">{{.GrandTotal.Label}}</span> <span class="total-value">{{.GrandTotal.Value}}</span></div>
  {{range .Payments}}<div class="total-row {{.Class}}"><span class="total-label">{{.Label}}</span> <span class="total-value">{{.Value}}</span></div>
  {{end}}{{if .Overpaid}}<div class="overpaid-note">Overpaid</div>{{end}}
</div></div>{{end}}

{{define "notes"}}{{if or .Notes .Terms}}<div class="notes">
  {{if .Notes}}<section class="notes-block"><h4>Notes</h4><p>{{.Notes}}</p></section>{{end}}
  {{if .Terms}}<section class="terms-block"><h4>Terms &amp; Conditions</h4><p>{{.Terms}}</p></section>{{end}}
</div>{{end}}{{end}}

{{define "footer"}}<div class="footer">
  <div>
    <div>Thank you for your business!</div>
    {{if .ShowBrand}}{{if .BrandName}}<div class="powered-by">Generated with {{.BrandName}}</div>{{end}}{{end}}
  </div>
  {{if .QRCode}}<img class="qr-code" src="{{.QRCode}}" alt="Invoice QR code">{{end}}
</div>
{{if .ShowBrand}}{{if .Watermark}}<div class="watermark"><img src="{{.Watermark}}" alt="{{.BrandName}}"></div>{{end}}{{end}}{{end}}
`
