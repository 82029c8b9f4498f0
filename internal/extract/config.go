package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Category pairs a category name with the keywords that vote for it.
// Declaration order matters: ties between equal scores resolve to the
// earlier category.
type Category struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Config holds the swappable data tables the engine runs on: category
// keywords, the unit-of-measure vocabulary, and the junk/surcharge keyword
// lists. A Config is immutable once handed to an engine; build a new one
// to change behavior.
type Config struct {
	Categories        []Category `json:"categories"`
	FallbackCategory  string     `json:"fallback_category"`
	Units             []string   `json:"units"`
	JunkKeywords      []string   `json:"junk_keywords"`
	SurchargeKeywords []string   `json:"surcharge_keywords"`
}

// DefaultConfig returns the built-in tables tuned for Vietnamese e-invoice
// providers (VNPT, MISA, M-INVOICE, Sapo, EasyInvoice, Petrolimex).
func DefaultConfig() *Config {
	return &Config{
		Categories: []Category{
			{
				Name: "Ăn uống",
				Keywords: []string{
					"món", "lẩu", "gà", "bò", "heo", "cá", "cua", "mực", "tôm", "ghẹ", "sò",
					"gỏi", "xào", "nướng", "chiên", "hấp", "hầm", "quay", "cơm", "xôi", "soup",
					"trà", "cà phê", "nước", "coca", "matcha", "oolong", "trái cây", "bánh",
					"đậu", "trứng", "lươn", "hàu", "khô mực", "khăn lạnh", "hủ tiếu", "baba",
					"bồ câu", "chả", "dừa", "khoáng", "suối", "sả", "rượu",
				},
			},
			{
				Name: "Viễn thông",
				Keywords: []string{
					"cước", "di động", "thẻ cào", "sim", "điện thoại", "internet", "mạng",
					"mệnh giá", "the cao menh gia",
				},
			},
			{
				Name: "Dịch vụ IT",
				Keywords: []string{
					"cài đặt", "máy tính", "sửa chữa", "bảo trì", "setup", "install", "văn phòng",
				},
			},
			{
				Name: "Thuê phòng",
				Keywords: []string{
					"thuê phòng", "phòng số", "cho thuê phòng", "phòng họp", "meeting room",
				},
			},
			{
				Name: "Vận chuyển",
				Keywords: []string{
					"thuê xe", "vận chuyển", "taxi", "grab", "giao hàng", "shipping", "ôtô",
				},
			},
			{
				Name:     "Hoa/Quà tặng",
				Keywords: []string{"hoa tươi", "hoa", "quà", "gift"},
			},
			{
				Name:     "Phụ tùng/Thiết bị",
				Keywords: []string{"tay đẩy", "thiết bị", "phụ tùng", "linh kiện"},
			},
		},
		FallbackCategory: "Khác",
		Units: []string{
			"CÁI", "CHIẾC", "BỘ", "GÓI", "HỘP", "THÙNG", "BAO", "CHAI", "LON", "LÍT",
			"LIT", "KG", "GRAM", "GM", "MÉT", "M", "M2", "M3", "CUỘN", "TẤM", "THANH",
			"VIÊN", "VỈ", "TỜ", "QUYỂN", "CUỐN", "RAM", "CẶP", "ĐÔI", "DĨA", "ĐĨA",
			"PHẦN", "THỐ", "TÔ", "CHÉN", "LY", "CỐC", "SUẤT", "KIM", "CHẬU", "CÂY",
			"GIỜ", "NGÀY", "THÁNG", "NĂM", "LẦN", "CHUYẾN", "LƯỢT", "PHÚT", "KW",
			"KWH", "SỐ", "MÓN", "KỆ", "BỊCH", "NỒI", "CON", "PCS", "NGƯỜI",
		},
		JunkKeywords: []string{
			"stt", "tên hàng", "đơn vị tính", "số lượng", "thành tiền", "người mua",
			"ký bởi", "trang", "thuế suất", "cộng tiền", "tổng cộng", "bằng chữ",
			"tiền thuế", "serial", "ký hiệu", "mẫu số", "vnd", "chuyển khoản",
			"vat invoice", "đơn vị bán", "mã tra cứu", "vat) rate)", "vat rate",
			"gtgt", "rate)", "amount)", "rate%)", "tên h", "đơ n v", "s ố l",
			"vị tính", "sau thuế", "chiết khấu", "a b c",
		},
		SurchargeKeywords: []string{
			"phụ thu", "phí dịch vụ", "phí phục vụ", "service charge", "surcharge",
		},
	}
}

// LoadConfigFile reads a JSON config from path and merges it over the
// defaults: non-empty fields in the file replace the built-in tables.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var override Config
	if err := json.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	cfg := DefaultConfig()
	if len(override.Categories) > 0 {
		cfg.Categories = override.Categories
	}
	if override.FallbackCategory != "" {
		cfg.FallbackCategory = override.FallbackCategory
	}
	if len(override.Units) > 0 {
		cfg.Units = override.Units
	}
	if len(override.JunkKeywords) > 0 {
		cfg.JunkKeywords = override.JunkKeywords
	}
	if len(override.SurchargeKeywords) > 0 {
		cfg.SurchargeKeywords = override.SurchargeKeywords
	}
	return cfg, nil
}

// Validate checks that the config can drive an engine.
func (c *Config) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("at least one category is required")
	}
	for _, cat := range c.Categories {
		if cat.Name == "" {
			return fmt.Errorf("category with empty name")
		}
		if len(cat.Keywords) == 0 {
			return fmt.Errorf("category %q has no keywords", cat.Name)
		}
	}
	if c.FallbackCategory == "" {
		return fmt.Errorf("fallback category is required")
	}
	if len(c.Units) == 0 {
		return fmt.Errorf("unit vocabulary is empty")
	}
	return nil
}

// unitSet builds an uppercase lookup set from the unit vocabulary.
func (c *Config) unitSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Units))
	for _, u := range c.Units {
		set[strings.ToUpper(u)] = struct{}{}
	}
	return set
}
