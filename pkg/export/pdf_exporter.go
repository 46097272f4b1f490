package export

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/jung-kurt/gofpdf"
)

const (
	coreFont     = "Arial"
	pageMargin   = 10.0
	rowHeight    = 6.5
	headerHeight = 7.5
)

var headerTemplate = template.Must(template.New("report-header").Funcs(template.FuncMap{
	"clean": cleanHTML,
}).Parse(`<b>{{clean .Title}}</b><br>` +
	`Generated on {{clean .GeneratedAt}} by {{clean .GeneratedBy}}<br>` +
	`{{if .Filters}}<i>Filters:</i> {{range $i, $f := .Filters}}{{if $i}}; {{end}}{{clean $f.Label}}: {{clean $f.Value}}{{end}}` +
	`{{else}}<i>No filters applied</i>{{end}}<br>`))

// PDFOptions configures fonts. An empty FontFile uses the built-in core font.
type PDFOptions struct {
	FontDir    string
	FontFamily string
	FontFile   string
}

// PDFExporter renders report documents into A4 portrait PDFs.
type PDFExporter struct {
	opts PDFOptions
}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter(opts PDFOptions) *PDFExporter {
	return &PDFExporter{opts: opts}
}

// Render lays out the header block, the statistics and the record table.
func (e *PDFExporter) Render(doc Document) ([]byte, error) {
	if len(doc.Records.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, 15, pageMargin)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("ttms-admin-api", true)
	pdf.AliasNbPages("")

	family, translate, err := e.setupFont(pdf)
	if err != nil {
		return nil, err
	}
	w := &pdfWriter{pdf: pdf, family: family, translate: translate}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(family, "", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	var header bytes.Buffer
	if err := headerTemplate.Execute(&header, doc); err != nil {
		return nil, fmt.Errorf("render pdf header: %w", err)
	}
	pdf.SetFont(family, "", 10)
	html := pdf.HTMLBasicNew()
	html.Write(5, translate(header.String()))
	pdf.Ln(4)

	if len(doc.Summary) > 0 {
		w.section("Summary")
		w.pairs(doc.Summary)
	}
	for _, breakdown := range doc.Breakdowns {
		if len(breakdown.Rows) == 0 {
			continue
		}
		w.section(breakdown.Title)
		w.pairs(breakdown.Rows)
	}

	w.section(fmt.Sprintf("Records (%d)", len(doc.Records.Rows)))
	w.table(doc.Records)

	if pdf.Err() {
		return nil, fmt.Errorf("render pdf: %w", pdf.Error())
	}
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) setupFont(pdf *gofpdf.Fpdf) (string, func(string) string, error) {
	if e.opts.FontFile == "" {
		return coreFont, pdf.UnicodeTranslatorFromDescriptor(""), nil
	}
	family := e.opts.FontFamily
	if family == "" {
		family = strings.TrimSuffix(filepath.Base(e.opts.FontFile), filepath.Ext(e.opts.FontFile))
	}
	if e.opts.FontDir != "" {
		pdf.SetFontLocation(e.opts.FontDir)
	}
	pdf.AddUTF8Font(family, "", e.opts.FontFile)
	pdf.AddUTF8Font(family, "B", e.opts.FontFile)
	pdf.AddUTF8Font(family, "I", e.opts.FontFile)
	if pdf.Err() {
		return "", nil, fmt.Errorf("load pdf font %s: %w", e.opts.FontFile, pdf.Error())
	}
	return family, func(s string) string { return s }, nil
}

type pdfWriter struct {
	pdf       *gofpdf.Fpdf
	family    string
	translate func(string) string
}

func (w *pdfWriter) section(title string) {
	w.pdf.Ln(2)
	w.pdf.SetFont(w.family, "B", 11)
	w.pdf.CellFormat(0, 7, w.translate(title), "B", 1, "", false, 0, "")
	w.pdf.Ln(1)
}

func (w *pdfWriter) pairs(fields []Field) {
	labelWidth, valueWidth := 70.0, 50.0
	w.pdf.SetFont(w.family, "", 9)
	for _, field := range fields {
		w.pdf.CellFormat(labelWidth, rowHeight, w.fit(field.Label, labelWidth), "1", 0, "", false, 0, "")
		w.pdf.CellFormat(valueWidth, rowHeight, w.fit(field.Value, valueWidth), "1", 1, "R", false, 0, "")
	}
}

func (w *pdfWriter) table(data Dataset) {
	pageWidth, pageHeight := w.pdf.GetPageSize()
	_, _, _, bottom := w.pdf.GetMargins()
	colWidth := (pageWidth - 2*pageMargin) / float64(len(data.Headers))

	drawHeader := func() {
		w.pdf.SetFont(w.family, "B", 8)
		w.pdf.SetFillColor(230, 230, 230)
		for _, header := range data.Headers {
			w.pdf.CellFormat(colWidth, headerHeight, w.fit(header, colWidth), "1", 0, "C", true, 0, "")
		}
		w.pdf.Ln(-1)
		w.pdf.SetFont(w.family, "", 8)
	}

	drawHeader()
	if len(data.Rows) == 0 {
		w.pdf.CellFormat(colWidth*float64(len(data.Headers)), rowHeight, w.translate("No records match the selected filters."), "1", 1, "C", false, 0, "")
		return
	}

	for _, row := range data.Rows {
		if w.pdf.GetY()+rowHeight > pageHeight-bottom {
			w.pdf.AddPage()
			drawHeader()
		}
		for _, header := range data.Headers {
			w.pdf.CellFormat(colWidth, rowHeight, w.fit(row[header], colWidth), "1", 0, "", false, 0, "")
		}
		w.pdf.Ln(-1)
	}
}

// fit translates s and shortens it with an ellipsis until it fits into width minus cell padding.
func (w *pdfWriter) fit(s string, width float64) string {
	limit := width - 2
	out := w.translate(s)
	if w.pdf.GetStringWidth(out) <= limit {
		return out
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		out = w.translate(string(runes) + "...")
		if w.pdf.GetStringWidth(out) <= limit {
			return out
		}
	}
	return ""
}

// cleanHTML drops characters the basic HTML writer would parse as markup.
func cleanHTML(s string) string {
	return strings.NewReplacer("<", "(", ">", ")").Replace(s)
}
