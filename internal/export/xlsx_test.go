package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hoadonkit/hoadonkit/internal/extract"
)

func sampleDocuments() []Document {
	return []Document{
		{
			Record: extract.InvoiceRecord{
				FileName:         "hoadon_001.pdf",
				IssueDate:        extract.NewField("15/3/2024"),
				InvoiceNumber:    extract.NewField("1234"),
				SellerName:       extract.NewField("CÔNG TY TNHH ABC"),
				SerialCode:       extract.NewField("1C24TAB"),
				LookupCode:       extract.NewField("A1B2C3D4E5"),
				SellerTaxID:      extract.NewField("0312345678"),
				PreTaxAmount:     extract.NewField("270,000"),
				TaxAmount:        extract.NewField("21,600"),
				PostTaxAmount:    extract.NewField("291,600"),
				LookupURL:        extract.NewField("https://tracuu.example.vn"),
				Category:         extract.NewField("Ăn uống"),
				TaxAuthorityCode: extract.NewField("00ABCDEF12"),
			},
			Items: []extract.LineItem{
				{Description: "Nước suối", Quantity: "2", UnitPrice: "10,000", Amount: "20,000"},
				{Description: "Cơm gà", Quantity: "1", UnitPrice: "250,000", Amount: "250,000"},
			},
		},
		{
			Record: extract.NewDegradedRecord("scanned.pdf"),
		},
	}
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func rawCell(t *testing.T, f *excelize.File, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheetName, cell, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return v
}

func TestBuilder_Build(t *testing.T) {
	data, err := NewBuilder().WriteBytes(sampleDocuments())
	require.NoError(t, err)

	f := openWorkbook(t, data)

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	assert.Equal(t, "Tên file", rawCell(t, f, "A1"))
	assert.Equal(t, "Phân loại", rawCell(t, f, "Q1"))

	// First document expands to one row per line item.
	assert.Equal(t, "hoadon_001.pdf", rawCell(t, f, "A2"))
	assert.Equal(t, "Nước suối", rawCell(t, f, "E2"))
	assert.Equal(t, "Cơm gà", rawCell(t, f, "E3"))

	// Money cells are written as numbers.
	assert.Equal(t, "20000", rawCell(t, f, "H2"))
	assert.Equal(t, "291600", rawCell(t, f, "K2"))

	// Degraded document keeps the sentinel text.
	assert.Equal(t, "scanned.pdf", rawCell(t, f, "A4"))
	assert.Equal(t, extract.Unrecognized, rawCell(t, f, "D4"))
	assert.Equal(t, extract.Unrecognized, rawCell(t, f, "K4"))
}

func TestBuilder_MergesInvoiceColumns(t *testing.T) {
	data, err := NewBuilder().WriteBytes(sampleDocuments())
	require.NoError(t, err)

	f := openWorkbook(t, data)

	merged, err := f.GetMergeCells(sheetName)
	require.NoError(t, err)

	ranges := make(map[string]bool, len(merged))
	for _, m := range merged {
		ranges[m.GetStartAxis()+":"+m.GetEndAxis()] = true
	}

	// Invoice-level columns of the two-item document span both rows.
	assert.True(t, ranges["A2:A3"], "file name column should be merged")
	assert.True(t, ranges["K2:K3"], "total column should be merged")
	assert.True(t, ranges["Q2:Q3"], "category column should be merged")

	// Line-item columns are never merged.
	assert.False(t, ranges["E2:E3"], "description column must stay per-row")
	assert.False(t, ranges["H2:H3"], "amount column must stay per-row")
}

func TestBuilder_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, NewBuilder().WriteFile(path, sampleDocuments()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 4) // header + 2 item rows + 1 degraded row
}

func TestBuilder_EmptyInput(t *testing.T) {
	data, err := NewBuilder().WriteBytes(nil)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	assert.Equal(t, "Tên file", rawCell(t, f, "A1"))
}
