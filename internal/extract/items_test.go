package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItemParser(t *testing.T) *ItemParser {
	t.Helper()
	cfg := DefaultConfig()
	return NewItemParser(cfg, NewJunkClassifier(cfg))
}

func TestItemParser_SimpleRow(t *testing.T) {
	p := newTestItemParser(t)

	items := p.Parse("1 Nước suối Chai 2 10.000 20.000")
	require.Len(t, items, 1)

	assert.Equal(t, "Nước suối", items[0].Description)
	assert.Equal(t, "2", items[0].Quantity)
	assert.Equal(t, "10,000", items[0].UnitPrice)
	assert.Equal(t, "20,000", items[0].Amount)
}

func TestItemParser_MultipleRows(t *testing.T) {
	p := newTestItemParser(t)

	text := `STT Tên hàng hóa, dịch vụ Đơn vị tính Số lượng Đơn giá Thành tiền
1 Lẩu gà lá é Phần 1 250.000 250.000
2 Nước suối Chai 2 10.000 20.000
Cộng tiền hàng: 270.000`

	items := p.Parse(text)
	require.Len(t, items, 2)
	assert.Equal(t, "Lẩu gà lá é", items[0].Description)
	assert.Equal(t, "250,000", items[0].Amount)
	assert.Equal(t, "Nước suối", items[1].Description)
	assert.Equal(t, "20,000", items[1].Amount)
}

func TestItemParser_DiscountColumn(t *testing.T) {
	p := newTestItemParser(t)

	// Third number is a zero discount column; the amount is the fourth.
	items := p.Parse("1 Phòng Deluxe Ngày 1 50.000 0 50.000 5.000 55.000")
	require.Len(t, items, 1)

	assert.Equal(t, "Phòng Deluxe", items[0].Description)
	assert.Equal(t, "1", items[0].Quantity)
	assert.Equal(t, "50,000", items[0].UnitPrice)
	assert.Equal(t, "50,000", items[0].Amount)
}

func TestItemParser_RateColumnSwap(t *testing.T) {
	p := newTestItemParser(t)

	// The 8 is a VAT-rate column captured where the amount belongs.
	items := p.Parse("1 Khăn lạnh Cái 2 4.000 8")
	require.Len(t, items, 1)

	assert.Equal(t, "4,000", items[0].UnitPrice)
	assert.Equal(t, "4,000", items[0].Amount)
}

func TestItemParser_SurchargeRow(t *testing.T) {
	p := newTestItemParser(t)

	// Surcharge rows carry a single amount: quantity defaults to 1 and
	// the price equals the amount.
	items := p.Parse("5 Phụ thu 30.000")
	require.Len(t, items, 1)

	assert.Equal(t, "Phụ thu", items[0].Description)
	assert.Equal(t, "1", items[0].Quantity)
	assert.Equal(t, "30,000", items[0].UnitPrice)
	assert.Equal(t, "30,000", items[0].Amount)
}

func TestItemParser_SkipsNoise(t *testing.T) {
	p := newTestItemParser(t)

	tests := []struct {
		name string
		line string
	}{
		{name: "pure numeric header", line: "1 2 3 4 5"},
		{name: "column letter header", line: "A B C 1 2=3x4"},
		{name: "too few numbers", line: "1 Ghi chú thêm"},
		{name: "no leading sequence", line: "Nước suối Chai 2 10.000 20.000"},
		{name: "empty", line: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, p.Parse(tt.line))
		})
	}
}

func TestItemParser_WrappedDescription(t *testing.T) {
	p := newTestItemParser(t)

	// The row's own text is a short fragment; the real name is on the
	// line above.
	text := `Dịch vụ cài đặt phần mềm
1 kế toán Lần 1 1.500.000 1.500.000`

	items := p.Parse(text)
	require.Len(t, items, 1)
	assert.Equal(t, "Dịch vụ cài đặt phần mềm kế toán", items[0].Description)
}
