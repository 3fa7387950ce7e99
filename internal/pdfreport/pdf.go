// Package pdfreport assembles the monthly financial report as a paginated
// PDF document.
package pdfreport

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/go-pdf/fpdf"

	"github.com/hugotakeda/FinanceManagarDiscord/internal/report"
	"github.com/hugotakeda/FinanceManagarDiscord/internal/storage"
)

// Report carries everything the monthly PDF shows. ChartPNG is optional;
// when present it is embedded below the category breakdown.
type Report struct {
	Title        string
	Summary      report.Summary
	Goals        []storage.Goal
	Transactions []storage.Transaction
	ChartPNG     []byte
}

// Render lays the report out and returns the document bytes.
func Render(r Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, r.Title, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total income: $%.2f", r.Summary.TotalIncome), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total expenses: $%.2f", r.Summary.TotalExpense), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Balance: $%.2f", r.Summary.Balance), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeCategoryBreakdown(pdf, r.Summary)

	if len(r.ChartPNG) > 0 {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("expense-chart", opts, bytes.NewReader(r.ChartPNG))
		pdf.ImageOptions("expense-chart", 45, pdf.GetY(), 120, 0, true, opts, 0, "")
		pdf.Ln(4)
	}

	writeGoals(pdf, r.Goals)
	writeTransactionTable(pdf, r.Transactions)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCategoryBreakdown(pdf *fpdf.Fpdf, s report.Summary) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Expenses by category", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	if len(s.ExpenseByCategory) == 0 {
		pdf.CellFormat(0, 6, "No expenses recorded this month.", "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	names := make([]string, 0, len(s.ExpenseByCategory))
	for name := range s.ExpenseByCategory {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		line := fmt.Sprintf("  %s: $%.2f", name, s.ExpenseByCategory[name])
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func writeGoals(pdf *fpdf.Fpdf, goals []storage.Goal) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Goal progress", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	if len(goals) == 0 {
		pdf.CellFormat(0, 6, "No goals recorded.", "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	for _, g := range goals {
		status := fmt.Sprintf("%.1f%%", report.GoalProgress(g))
		if report.GoalDone(g) {
			status = "completed"
		}
		line := fmt.Sprintf("  %s: %s ($%.2f / $%.2f)", g.Name, status, g.CurrentAmount, g.TargetAmount)
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func writeTransactionTable(pdf *fpdf.Fpdf, txs []storage.Transaction) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Transactions", "", 1, "L", false, 0, "")

	widths := []float64{25, 22, 25, 38, 80}
	headers := []string{"Date", "Kind", "Amount", "Category/Source", "Description"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(220, 220, 220)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	if len(txs) == 0 {
		pdf.CellFormat(190, 7, "No transactions recorded this month.", "1", 1, "L", false, 0, "")
		return
	}

	for _, t := range txs {
		ref := t.Category
		if t.Kind == storage.KindIncome {
			ref = t.Source
		}
		cells := []string{
			t.Date.Format("02/01/2006"),
			t.Kind,
			fmt.Sprintf("$%.2f", t.Amount),
			ref,
			t.Description,
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
