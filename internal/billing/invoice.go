package billing

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Invoice is the fixed-layout monthly penalty statement.
type Invoice struct {
	Year     int
	Month    time.Month
	UserName string
	Lines    []Bucket
	Total    uint
	IssuedAt time.Time
}

// Number is the invoice identifier: {year}{month:02d}-001.
func (inv Invoice) Number() string {
	return fmt.Sprintf("%d%02d-001", inv.Year, int(inv.Month))
}

// DueDate is the last day of the billed month.
func (inv Invoice) DueDate() time.Time {
	return time.Date(inv.Year, inv.Month, 1, 0, 0, 0, 0, inv.IssuedAt.Location()).
		AddDate(0, 1, -1)
}

// FileName is the download name: 請求書_{year}年{month}月.pdf
func FileName(year int, month time.Month) string {
	return fmt.Sprintf("請求書_%d年%d月.pdf", year, int(month))
}

// RenderPDF draws the invoice on a single A4 page: header block, line-item
// table, total row and the fixed payment-instructions footer. fontPath, when
// set, points to a TTF with Japanese glyphs; without it the built-in
// Helvetica is used and labels stay in their English halves only.
func RenderPDF(inv Invoice, fontPath string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	family := "Helvetica"
	jp := fontPath != ""
	if jp {
		family = "NotoSansJP"
		pdf.AddUTF8Font(family, "", fontPath)
	}

	label := func(ja, en string) string {
		if jp {
			return ja + " / " + en
		}
		return en
	}

	pdf.SetFont(family, "", 18)
	pdf.CellFormat(0, 12, label("請求書", "Invoice"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(family, "", 10)
	pdf.CellFormat(110, 6, label("請求番号", "Invoice No.")+": "+inv.Number(), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, label("請求先", "To")+": "+inv.UserName, "", 1, "L", false, 0, "")
	pdf.CellFormat(110, 6, label("請求日", "Date")+": "+inv.IssuedAt.Format("2006/01/02"), "", 1, "L", false, 0, "")
	pdf.CellFormat(110, 6, label("支払期限", "Due Date")+": "+inv.DueDate().Format("2006/01/02"), "", 1, "L", false, 0, "")
	pdf.CellFormat(110, 6, fmt.Sprintf("%s: %d-%02d", label("請求期間", "Period"), inv.Year, int(inv.Month)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(family, "", 12)
	pdf.CellFormat(130, 10, label("合計金額", "Total"), "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("JPY %d", inv.Total), "T", 1, "R", false, 0, "")
	pdf.Ln(4)

	// line-item table: group / violation / count / amount
	pdf.SetFont(family, "", 9)
	pdf.SetFillColor(249, 250, 251)
	pdf.CellFormat(45, 8, label("グループ", "Group"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(80, 8, label("違反内容", "Violation"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, label("回数", "Count"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, label("金額", "Amount"), "1", 1, "R", true, 0, "")

	if len(inv.Lines) == 0 {
		pdf.CellFormat(180, 8, label("この月の違反はありません", "No violations this month"), "1", 1, "C", false, 0, "")
	}
	for _, line := range inv.Lines {
		pdf.CellFormat(45, 8, line.GroupName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(80, 8, line.RuleTitle, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", line.Count), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("JPY %d", line.Amount), "1", 1, "R", false, 0, "")
	}

	pdf.CellFormat(145, 8, label("合計", "Total"), "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("JPY %d", inv.Total), "1", 1, "R", true, 0, "")
	pdf.Ln(8)

	pdf.SetFont(family, "", 10)
	pdf.CellFormat(0, 6, label("お支払い方法", "Payment Method"), "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 8)
	if jp {
		pdf.CellFormat(0, 5, "グループ管理者の指示に従って、指定された方法でお支払いください。", "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, "Please follow the instructions from your group administrator for payment.", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
