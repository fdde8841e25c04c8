package output

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/lifeplan/income-engine/internal/domain"
)

const (
	pdfMarginLeft   = 15.0
	pdfMarginTop    = 15.0
	pdfMarginRight  = 15.0
	pdfMarginBottom = 20.0
	pdfContentWidth = 210.0 - pdfMarginLeft - pdfMarginRight
)

// PDFFormatter renders the household projection as a printable report.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(projection *domain.HouseholdProjection) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 12, "Lifetime Income Projection", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(pdfContentWidth, 7, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	addPersonSection(pdf, "Self", projection.Self)
	addPersonSection(pdf, "Partner", projection.Partner)

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 9, fmt.Sprintf("Combined lifetime total: %s wan", projection.CombinedTotal.StringFixed(2)), "T", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func addPersonSection(pdf *fpdf.Fpdf, label string, p *domain.PersonProjection) {
	if p == nil {
		return
	}

	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 9, label, "", 1, "L", false, 0, "")

	if len(p.Rows) == 0 {
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(50, 50, 50)
		pdf.CellFormat(pdfContentWidth, 7, "No projection available", "", 1, "L", false, 0, "")
		pdf.Ln(3)
		return
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(245, 247, 250)
	pdf.SetTextColor(50, 50, 50)
	pdf.CellFormat(25, 7, "Age", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Income (wan)", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Rate %", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Phase", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, row := range p.Rows {
		phase := "working"
		if row.IsRetired {
			phase = "retired"
		}
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", row.Age), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, row.Income.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, row.GrowthRatePercent.StringFixed(1), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, phase, "1", 1, "C", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(pdfContentWidth, 8, fmt.Sprintf("Lifetime total: %s wan", p.LifetimeTotal.StringFixed(2)), "", 1, "L", false, 0, "")

	if len(p.CareerStages) > 0 {
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(30, 7, "Stage", "1", 0, "C", true, 0, "")
		pdf.CellFormat(60, 7, "Position", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 7, "Ages", "1", 0, "C", true, 0, "")
		pdf.CellFormat(20, 7, "Years", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Income (yuan)", "1", 1, "C", true, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, stage := range p.CareerStages {
			pdf.CellFormat(30, 6, stage.StageName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(60, 6, stage.Position, "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, stage.AgeRange, "1", 0, "C", false, 0, "")
			pdf.CellFormat(20, 6, fmt.Sprintf("%d", stage.DurationYears), "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, stage.YearlyIncome.StringFixed(0), "1", 1, "R", false, 0, "")
		}
	}
	pdf.Ln(4)
}
