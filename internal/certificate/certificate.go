// Package certificate renders the standalone printable completion document.
package certificate

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/codernaccotax/quizdrill/internal/errors"
)

// Defaults for the institute branding on the document.
const (
	DefaultHeader   = "Coder & AccoTax – Premium Computer Training Institute"
	DefaultSubtitle = "Barrackpore · www.codernaccotax.co.in"
	DefaultTitle    = "Certificate of Completion"
)

// Data parameterizes one certificate.
type Data struct {
	StudentName string
	QuizTitle   string
	Score       int
	Total       int
	Header      string
	Subtitle    string
	Title       string
	IssuedAt    time.Time
}

type renderData struct {
	Data
	Percentage string
	Date       string
}

// Generate validates the request and renders the complete HTML document with
// embedded styling and an auto-print instruction. A blank student name fails
// with a validation error and produces no document.
func Generate(d Data) (string, error) {
	if strings.TrimSpace(d.StudentName) == "" {
		return "", errors.NewValidationError("student name", "cannot be empty")
	}
	if d.Total <= 0 {
		return "", errors.NewValidationError("total questions", "must be positive")
	}

	if d.Header == "" {
		d.Header = DefaultHeader
	}
	if d.Subtitle == "" {
		d.Subtitle = DefaultSubtitle
	}
	if d.Title == "" {
		d.Title = DefaultTitle
	}
	if d.IssuedAt.IsZero() {
		d.IssuedAt = time.Now()
	}
	d.StudentName = strings.TrimSpace(d.StudentName)

	rd := renderData{
		Data:       d,
		Percentage: Percentage(d.Score, d.Total),
		Date:       d.IssuedAt.Format("02 Jan 2006"),
	}

	var buf bytes.Buffer
	if err := certificateTmpl.Execute(&buf, rd); err != nil {
		return "", fmt.Errorf("render certificate: %w", err)
	}
	return buf.String(), nil
}

// Percentage formats score/total as a percentage with two decimals.
func Percentage(score, total int) string {
	if total <= 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(score)/float64(total)*100)
}

var certificateTmpl = template.Must(template.New("certificate").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Title}}</title>
<meta charset="UTF-8" />
<style>
  body { font-family: system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; background: #0f172a; margin: 0; }
  .page { padding: 40px 16px; display:flex; justify-content:center; }
  .card {
    background: radial-gradient(circle at top, #eff6ff, #e2e8f0 40%, #cbd5f5 80%);
    padding:40px; max-width:900px; width:100%;
    border-radius:24px; box-shadow:0 24px 60px rgba(15,23,42,0.7);
    border: 2px solid #1d4ed8;
  }
  h1 { font-size:2rem; text-align:center; font-weight:800; letter-spacing:0.08em; text-transform:uppercase; color:#0f172a; }
  .org { text-align:center; font-weight:700; margin-bottom:6px; color:#1d4ed8; font-size:0.95rem; }
  .sub { text-align:center; color:#4b5563; font-size:0.8rem; margin-bottom:24px; }
  .student {
    font-size:1.8rem; font-weight:700; text-align:center; margin-top:20px;
    border-bottom:2px solid #38bdf8; display:inline-block; padding:4px 12px;
    color:#0f172a;
  }
  .body-text { text-align:center; margin-top:12px; font-size:0.98rem; color:#111827; }
  .score-chip { margin-top:16px; text-align:center; font-size:0.95rem; font-weight:600; color:#1d4ed8; }
  .issued { text-align:center; margin-top:10px; font-size:0.85rem; color:#4b5563; }
  .footer { margin-top:40px; display:flex; justify-content:space-between; font-size:0.85rem; color:#374151; }
  .sign-line { border-top:1px solid #111827; width:180px; margin-left:auto; margin-bottom:4px; }
  .sign-name { font-weight:600; }
</style>
</head>
<body>
<div class="page">
<div class="card">

<div class="org">{{.Header}}</div>
<div class="sub">{{.Subtitle}}</div>

<h1>{{.Title}}</h1>

<div class="body-text">
  This is to certify that<br/>
  <span class="student">{{.StudentName}}</span><br/>
  has successfully completed the test<br/>
  <strong>{{.QuizTitle}}</strong>
</div>

<div class="score-chip">
  Score: {{.Score}}/{{.Total}} ({{.Percentage}}%)
</div>

<div class="issued">
  Issued on: {{.Date}}
</div>

<div class="footer">
  <div>© Coder & AccoTax</div>
  <div style="text-align:right;">
    <div class="sign-line"></div>
    <div class="sign-name">Sukanta Hui</div>
    <div>Director</div>
  </div>
</div>

</div>
</div>

<script>window.print();</script>
</body>
</html>
`))
