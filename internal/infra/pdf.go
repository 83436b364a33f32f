package infra

// pdf.go — Compliance report generation using go-pdf/fpdf.
// Renders an A4 summary sheet for a finalized occasion:
//   - occasion header (date, session type, lions in charge, players)
//   - bingo section, pull-tab section, totals section
//   - over/short lines highlighted in bold
//
// The output file is saved to storagePath/occasion_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/model"
)

// GenerateOccasionReportPDF renders the financial summary of an occasion.
// storagePath is created if needed. Returns the absolute path of the file.
func GenerateOccasionReportPDF(occ *model.Occasion, s model.FinancialSummary, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("occasion_%s.pdf", occ.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "RLC Bingo Occasion Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("%s  —  Session %s", occ.Date.Format("January 2, 2006"), occ.SessionType), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW/2, 5, "Lion in Charge: "+occ.LionInCharge, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Pull-Tab Lion: "+occ.LionPullTabs, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, fmt.Sprintf("Players: %d", occ.TotalPlayers), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Status: "+occ.Status, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	section := func(title string, rows []reportRow) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(contentW, 7, title, "1", 1, "L", true, 0, "")
		for _, row := range rows {
			style := ""
			if row.bold {
				style = "B"
			}
			pdf.SetFont("Helvetica", style, 9)
			pdf.CellFormat(contentW*0.65, 6, row.label, "LB", 0, "L", false, 0, "")
			pdf.CellFormat(contentW*0.35, 6, "$"+row.amount.StringFixed(2), "RB", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}

	section("Bingo", []reportRow{
		{"Electronic Sales", s.ElectronicSales, false},
		{"Miscellaneous Sales", s.MiscellaneousSales, false},
		{"Paper Sales", s.PaperSales, false},
		{"Total Bingo Sales", s.BingoSales, true},
		{"Bingo Prizes Paid", s.BingoPrizesPaid, false},
		{"Bingo Net Profit", s.BingoNetProfit, false},
		{"Bingo Deposit", s.BingoDeposit, false},
		{"Startup Cash", s.BingoStartupCash, false},
		{"Bingo Net Deposit", s.BingoNetDeposit, false},
		{"Bingo Over/Short", s.BingoOverShort, true},
	})

	section("Pull-Tabs", []reportRow{
		{"Regular Sales", s.PullTabRegularSales, false},
		{"Special Event Sales", s.PullTabSpecialSales, false},
		{"Total Pull-Tab Sales", s.PullTabSales, true},
		{"Regular Prizes Paid", s.PullTabRegularPrizesPaid, false},
		{"Special Event Prizes Paid", s.PullTabSpecialPrizesPaid, false},
		{"Total Pull-Tab Prizes", s.PullTabPrizes, false},
		{"Prizes Paid by Check", s.PullTabPrizesPaidByCheck, false},
		{"Pull-Tab Net Profit", s.PullTabNetProfit, false},
		{"Pull-Tab Net Deposit", s.PullTabNetDeposit, false},
		{"Pull-Tab Over/Short", s.PullTabOverShort, true},
	})

	section("Totals", []reportRow{
		{"Total Sales", s.TotalSales, true},
		{"Total Prizes Paid", s.TotalPrizesPaid, false},
		{"Total Prizes Paid by Check", s.TotalPrizesPaidByCheck, false},
		{"Total Net Profit", s.TotalNetProfit, false},
		{"Currency Deposit", s.TotalCurrencyDeposit, false},
		{"Coin Deposit", s.TotalCoinDeposit, false},
		{"Check Deposit", s.TotalCheckDeposit, false},
		{"Total Actual Deposit", s.TotalActualDeposit, false},
		{"Total Net Deposit", s.TotalNetDeposit, false},
		{"Total Over/Short", s.TotalOverShort, true},
	})

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5,
		fmt.Sprintf("Sales per Player: $%s    Profit per Player: $%s",
			s.SalesPerPlayer.StringFixed(2), s.ProfitPerPlayer.StringFixed(2)),
		"", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

type reportRow struct {
	label  string
	amount decimal.Decimal
	bold   bool
}
