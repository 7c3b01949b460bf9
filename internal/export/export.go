package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/dharmasatrya/tripplanner/internal/markdown"
	"github.com/dharmasatrya/tripplanner/internal/models"
)

const fallbackName = "trip"

// MarkdownFilename is the download name for a plan, e.g.
// "Tokyo_travel_plan_2026.md".
func MarkdownFilename(destination string, year int) string {
	name := markdown.SanitizeFilename(destination)
	if name == "" {
		name = fallbackName
	}
	return fmt.Sprintf("%s_travel_plan_%d.md", name, year)
}

func PDFFilename(destination string, year int) string {
	return strings.TrimSuffix(MarkdownFilename(destination, year), ".md") + ".pdf"
}

// PDF renders a saved plan as an A4 document.
func PDF(plan *models.Plan) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	tr, symbol := currencySafe(pdf.UnicodeTranslatorFromDescriptor(""), plan.Costs.Symbol, plan.Costs.Currency)
	pdf.AddPage()

	// Header bar
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(170, 10, tr(plan.Request.Destination+" Travel Plan"), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Generated "+plan.CreatedAt.Format("02 Jan 2006, 15:04"), "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+tr(title), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, tr(value), "", 1, "L", false, 0, "")
	}

	sectionHeader("Trip Overview")
	row("Route", plan.Request.Origin+" to "+plan.Request.Destination)
	row("Duration", fmt.Sprintf("%d days", plan.Request.Duration))
	row("Budget", string(plan.Request.Budget))
	row("Pace", plan.Request.Pace)
	row("Interests", strings.Join(plan.Request.Interests, ", "))
	if plan.Request.StartDate != "" {
		row("Start date", plan.Request.StartDate)
	}
	pdf.Ln(4)

	if len(plan.Costs.Lines) > 0 {
		sectionHeader(fmt.Sprintf("Cost Estimation (in %s and $)", symbol))
		for _, line := range plan.Costs.Lines {
			row(line.Label, strings.TrimPrefix(line.Text, line.Label+": "))
		}
		pdf.Ln(4)
	}

	if plan.Markdown != "" {
		sectionHeader("Itinerary")
		writeMarkdown(pdf, tr, plan.Markdown)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

// currencySafe wraps the cp1252 translator so that a currency symbol the core
// fonts cannot encode is printed as its ISO code instead, e.g. "INR 66400.00".
// The returned label is what the cost section heading should show.
func currencySafe(tr func(string) string, symbol, code string) (func(string) string, string) {
	if symbol == "" || code == "" || encodable(tr, symbol) {
		return tr, symbol
	}
	return func(s string) string {
		return tr(strings.ReplaceAll(s, symbol, code+" "))
	}, code
}

// encodable reports whether every rune of s survives translation. Unknown
// runes come back as '.'.
func encodable(tr func(string) string, s string) bool {
	return strings.Count(tr(s), ".") == strings.Count(s, ".")
}

// writeMarkdown prints headings in bold and everything else as wrapped body
// text. Inline emphasis markers are dropped.
func writeMarkdown(pdf *gofpdf.Fpdf, tr func(string) string, text string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		switch {
		case line == "":
			pdf.Ln(3)
		case strings.HasPrefix(line, "#"):
			pdf.SetFont("Helvetica", "B", 12)
			pdf.SetTextColor(13, 24, 37)
			pdf.MultiCell(170, 6, tr(strings.TrimSpace(strings.TrimLeft(line, "#"))), "", "L", false)
			pdf.Ln(1)
		default:
			if rest, ok := strings.CutPrefix(strings.TrimLeft(line, " "), "- "); ok {
				line = "• " + rest
			}
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(40, 40, 40)
			pdf.MultiCell(170, 5, tr(stripEmphasis(line)), "", "L", false)
		}
	}
}

func stripEmphasis(s string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
}
