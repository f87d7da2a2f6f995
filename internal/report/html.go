package report

import (
	"html/template"
	"io"
)

// WriteHTML renders the printable annexure page. Unlike the PDF, the HTML
// table uses series-specific headers and adds a status column; the page
// triggers the browser print dialog on load.
func WriteHTML(w io.Writer, d *Data) error {
	return htmlTmpl.Execute(w, d)
}

var htmlTmpl = template.Must(template.New("heat_report").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Order Report - {{.Order.OrderNo}}</title>
<style>
  @page { size: landscape; margin: 1cm; }
  body { font-family: Arial, sans-serif; font-size: 10px; margin: 0; padding: 0; }
  .header { text-align: center; margin-bottom: 20px; }
  .company-name { font-size: 18px; font-weight: bold; margin-bottom: 5px; }
  .report-title { font-size: 14px; font-weight: bold; margin-bottom: 20px; }
  .order-info { margin-bottom: 20px; display: flex; justify-content: space-between; }
  .info-item { margin-bottom: 5px; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
  th, td { border: 1px solid #000; padding: 5px; text-align: left; vertical-align: top; }
  th { background-color: #f2f2f2; font-weight: bold; white-space: nowrap; }
  .completed { background-color: #e8f5e8; }
  @media print { body { font-size: 9px; } }
</style>
</head>
<body>
<div class="header">
  <div class="company-name">{{.Company}}</div>
  <div class="report-title">HEAT ANNEXTURE - ACTUATOR</div>
</div>
<div class="order-info">
  <div>
    <div class="info-item"><strong>Item Code:</strong> {{.Order.ItemCode}}</div>
    <div class="info-item"><strong>Size:</strong> {{.SizeDescription}}</div>
    <div class="info-item"><strong>Qty:</strong> {{.Order.OrderQty}}</div>
  </div>
  <div>
    <div class="info-item"><strong>Date:</strong> {{.GeneratedAt.Format "02-01-2006"}}</div>
    <div class="info-item"><strong>Customer:</strong> {{.Order.Customer}}</div>
    <div class="info-item"><strong>SO Number:</strong> {{.Order.SalesOrderNo}}</div>
  </div>
</div>
<table>
  <thead>
    <tr>
      <th>Sr No</th>
      <th>Actuator Serial</th>
      {{range .FieldColumns}}<th>{{.}}</th>{{end}}
      <th>Status</th>
      <th>Assembler</th>
    </tr>
  </thead>
  <tbody>
    {{range .Rows}}
    <tr{{if eq .Status "completed"}} class="completed"{{end}}>
      <td>{{.SrNo}}</td>
      <td>{{.SerialNo}}</td>
      {{range .Values}}<td>{{.}}</td>{{end}}
      <td>{{if eq .Status "completed"}}Completed{{else}}Pending{{end}}</td>
      <td>{{.Assembler}}</td>
    </tr>
    {{end}}
  </tbody>
</table>
<script>
  window.onload = function() { window.print(); };
</script>
</body>
</html>
`))
