package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hoadonkit/hoadonkit/internal/extract"
)

// Document pairs one extracted invoice with its line items for export.
type Document struct {
	Record extract.InvoiceRecord
	Items  []extract.LineItem
}

const sheetName = "Hóa đơn"

// Column layout of the summary workbook. Line-item columns (E–H) vary per
// row; every other column holds invoice-level data and is merged across
// the rows of one document.
var headers = []string{
	"Tên file",           // A
	"Ngày hóa đơn",       // B
	"Số hóa đơn",         // C
	"Đơn vị bán",         // D
	"Tên hàng hóa",       // E
	"Số lượng",           // F
	"Đơn giá",            // G
	"Thành tiền",         // H
	"Số tiền trước Thuế", // I
	"Tiền thuế",          // J
	"Số tiền sau",        // K
	"Link lấy hóa đơn",   // L
	"Mã tra cứu",         // M
	"Mã số thuế",         // N
	"Mã CQT",             // O
	"Ký hiệu",            // P
	"Phân loại",          // Q
}

var columnWidths = map[string]float64{
	"A": 30, "B": 12, "C": 15, "D": 40,
	"E": 50, "F": 10, "G": 15, "H": 18,
	"I": 18, "J": 15, "K": 18, "L": 15,
	"M": 20, "N": 15, "O": 15, "P": 12,
	"Q": 15,
}

// invoiceColumns are merged vertically when a document spans several item
// rows. E–H stay per-row.
var invoiceColumns = []string{"A", "B", "C", "D", "I", "J", "K", "L", "M", "N", "O", "P", "Q"}

var moneyColumns = map[string]bool{"G": true, "H": true, "I": true, "J": true, "K": true}

// Builder renders extracted invoices into a styled XLSX workbook: one row
// per line item, invoice-level cells merged per document, money columns as
// numbers with #,##0 formatting.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// Build produces the workbook for the given documents. Document order is
// preserved; a document without line items still occupies one row.
func (b *Builder) Build(docs []Document) (*excelize.File, error) {
	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheetName); index == -1 {
		if _, err := f.NewSheet(sheetName); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(activeIndex)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	row := 2
	var groups [][2]int // first and last row of each document
	for _, doc := range docs {
		start := row
		if len(doc.Items) == 0 {
			if err := writeInvoiceCells(f, row, doc.Record); err != nil {
				return nil, err
			}
			row++
		} else {
			for i, item := range doc.Items {
				if i == 0 {
					if err := writeInvoiceCells(f, row, doc.Record); err != nil {
						return nil, err
					}
				}
				if err := writeItemCells(f, row, item); err != nil {
					return nil, err
				}
				row++
			}
		}
		groups = append(groups, [2]int{start, row - 1})
	}
	lastRow := row - 1

	if err := mergeInvoiceGroups(f, groups); err != nil {
		return nil, err
	}
	if err := applyStyles(f, lastRow); err != nil {
		return nil, err
	}

	return f, nil
}

// WriteFile builds the workbook and saves it at path.
func (b *Builder) WriteFile(path string, docs []Document) error {
	f, err := b.Build(docs)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// WriteBytes builds the workbook and returns it as XLSX bytes.
func (b *Builder) WriteBytes(docs []Document) ([]byte, error) {
	f, err := b.Build(docs)
	if err != nil {
		return nil, fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeInvoiceCells(f *excelize.File, row int, rec extract.InvoiceRecord) error {
	values := map[string]any{
		"A": rec.FileName,
		"B": rec.IssueDate.String(),
		"C": rec.InvoiceNumber.String(),
		"D": rec.SellerName.String(),
		"I": moneyValue(rec.PreTaxAmount),
		"J": moneyValue(rec.TaxAmount),
		"K": moneyValue(rec.PostTaxAmount),
		"L": rec.LookupURL.String(),
		"M": rec.LookupCode.String(),
		"N": rec.SellerTaxID.String(),
		"O": rec.TaxAuthorityCode.String(),
		"P": rec.SerialCode.String(),
		"Q": rec.Category.String(),
	}
	for col, v := range values {
		if err := f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row), v); err != nil {
			return err
		}
	}
	return nil
}

func writeItemCells(f *excelize.File, row int, item extract.LineItem) error {
	values := map[string]any{
		"E": item.Description,
		"F": item.Quantity,
		"G": moneyText(item.UnitPrice),
		"H": moneyText(item.Amount),
	}
	for col, v := range values {
		if err := f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row), v); err != nil {
			return err
		}
	}
	return nil
}

// moneyValue converts a money field into a spreadsheet cell value:
// numbers for parseable amounts so the #,##0 format applies, the raw text
// (sentinel included) otherwise, empty for unset.
func moneyValue(field extract.Field) any {
	if !field.IsSet() && !field.IsUnrecognized() {
		return ""
	}
	return moneyText(field.String())
}

func moneyText(s string) any {
	if s == "" {
		return ""
	}
	if n, ok := extract.ParseMoney(s); ok {
		return n
	}
	return s
}

// mergeInvoiceGroups merges the invoice-level columns across each
// document's row span. Single-row documents need no merge.
func mergeInvoiceGroups(f *excelize.File, groups [][2]int) error {
	for _, g := range groups {
		start, end := g[0], g[1]
		if end <= start {
			continue
		}
		for _, col := range invoiceColumns {
			top := fmt.Sprintf("%s%d", col, start)
			bottom := fmt.Sprintf("%s%d", col, end)
			if err := f.MergeCell(sheetName, top, bottom); err != nil {
				return err
			}
		}
	}
	return nil
}

func applyStyles(f *excelize.File, lastRow int) error {
	thin := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11, Family: "Arial"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
		Border: thin,
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", "Q1", headerStyle); err != nil {
		return err
	}

	if lastRow < 2 {
		return freezeAndFilter(f, lastRow)
	}

	textStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
		Border:    thin,
	})
	if err != nil {
		return err
	}
	moneyFmt := "#,##0"
	moneyStyle, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &moneyFmt,
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:       thin,
	})
	if err != nil {
		return err
	}

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		style := textStyle
		if moneyColumns[col] {
			style = moneyStyle
		}
		first := fmt.Sprintf("%s%d", col, 2)
		last := fmt.Sprintf("%s%d", col, lastRow)
		if err := f.SetCellStyle(sheetName, first, last, style); err != nil {
			return err
		}
	}

	for col, width := range columnWidths {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return err
		}
	}

	return freezeAndFilter(f, lastRow)
}

func freezeAndFilter(f *excelize.File, lastRow int) error {
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	if lastRow < 1 {
		lastRow = 1
	}
	return f.AutoFilter(sheetName, fmt.Sprintf("A1:Q%d", lastRow), nil)
}
