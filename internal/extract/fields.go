package extract

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// Detector cascades for the labeled header and footer fields. Each list is
// ordered most-specific first and the first match wins, except the monetary
// totals where the LAST occurrence in the document wins (grand totals sit
// on the final page, after per-page subtotals).
//
// The pattern sets cover the label variants of the major Vietnamese
// e-invoice providers (VNPT, MISA, M-INVOICE, Sapo, EasyInvoice,
// Petrolimex), including their OCR-damaged forms.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Ngày\s*\(date\)\s*(\d+)\s*tháng\s*\(month\)\s*(\d+)\s*năm\s*\(year\)\s*(\d+)`),
	regexp.MustCompile(`(?i)Ngày\s*\(day\)\s*(\d+)\s*tháng\s*\(month\)\s*(\d+)\s*năm\s*\(year\)\s*(\d+)`),
	regexp.MustCompile(`(?i)Ngày\s*\(Date\)\s*(\d+)\s*[Tt]háng\s*\([Mm]onth\)\s*(\d+)\s*[Nn]ăm\s*\([Yy]ear\)\s*(\d+)`),
	regexp.MustCompile(`(?i)Ngày\s+(\d+)\s+tháng\s+(\d+)\s+năm\s+(\d+)`),
	regexp.MustCompile(`(?i)Ngày\s*(\d+)\s*tháng\s*(\d+)\s*năm\s*(\d+)`),
	regexp.MustCompile(`(?i)Ngày(\d+)tháng(\d+)năm(\d+)`),
}

var invoiceNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Số\s*\(No\.?\)[:\s]*(\d{5,})`),
	regexp.MustCompile(`(?i)Số[/\s]*\(Invoice No\.?\)[:\s]*(\d+)`),
	regexp.MustCompile(`(?i)\(RESTAURANT BILL\)\s*(\d+)`),
	regexp.MustCompile(`(?i)Số:\s*(\d+)`),
	regexp.MustCompile(`(?i)Số hóa đơn[:\s]*(\d+)`),
	regexp.MustCompile(`(?i)Số\s*\(No\.?\)[:\s]*(\d+)`),
	regexp.MustCompile(`(?i)s[éèẹẽe][: ]+\s*(\d+)`),
	regexp.MustCompile(`(?i)S[óố][: ]+\s*(\d+)`),
}

var sellerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Đơn vị bán hàng\s*\([Ss]eller\)[:\s]*(.+)`),
	regexp.MustCompile(`Tên người bán\s*\([Ss]eller\)[:\s]*(.+)`),
	regexp.MustCompile(`Đơn vị bán hàng\s*\([Cc]ompany\)[:\s]*(.+)`),
	regexp.MustCompile(`Đơn vị bán hàng[:\s]*(.+)`),
	regexp.MustCompile(`Đơn vị bán\s*\([Ss]eller\)[:\s]*(.+)`),
	regexp.MustCompile(`Tên đơn vị bán hàng[:\s]*(.+)`),
	regexp.MustCompile(`HỘ KINH DOANH[:\s]*(.+)`),
}

var (
	sellerPrefixPattern  = regexp.MustCompile(`(?i)^\s*[(\[]?\s*(?:Seller|Company|Người bán|Doanh nghiệp|Tên đơn vị)\s*[)\]]?\s*[:.\-]?\s*`)
	sellerPunctPattern   = regexp.MustCompile(`^\s*[:.\-]+\s*`)
	sellerTaxTailPattern = regexp.MustCompile(`(?i)\s*Mã số thuế.*$`)
	sellerMSTTailPattern = regexp.MustCompile(`(?i)\s*MST.*$`)
	sellerAddrPattern    = regexp.MustCompile(`(?i)\s*Địa chỉ.*$`)
	nextLinePattern      = regexp.MustCompile(`^\n([^\n]+)`)
	signedByPattern      = regexp.MustCompile(`(?:Ký bởi|Được ký bởi)[:\s]*([A-ZĐ][A-ZĐÀÁẢÃẠ\s]+(?:\n[A-ZĐÀÁẢÃẠ\s]+)?)`)
)

var serialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)[KK]ý hiệu\s*/\s*\([Ss]erial(?:\s*No\.?)?\)[:\s]*([A-Z0-9]+)`),
	regexp.MustCompile(`(?i)[KK]ý hiệu\s*\([Ss]erial\)[:\s]*([A-Z0-9]+)`),
	regexp.MustCompile(`(?i)[KK]ý hiệu\s*\([Ss]erial(?:\s*No\.?)?\)[:\s]*([A-Z0-9]+)`),
	regexp.MustCompile(`(?i)[KK]ý hiệu\s*\([Ss]eries\)[:\s]*([A-Z0-9]+)`),
	regexp.MustCompile(`(?i)[KK]ý hiệu[:\s]*([A-Z0-9]+)`),
	regexp.MustCompile(`(?i)Mẫu số\s*-\s*[KK]ý hiệu[^:]*[:\s]*([A-Z0-9]+)`),
}

var lookupCodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Mã nhận hóa đơn\s*\([Cc]ode for checking\)[:\s]*([A-Z0-9]+)`),
	regexp.MustCompile(`(?i)Mã tra cứu\s*\([Ll]ookup\s*code\)[:\s]*([A-Za-z0-9_]+)`),
	regexp.MustCompile(`(?i)Mã tra cứu hóa đơn\s*\([Ii]nvoice code\)[:\s]*([A-Za-z0-9_]+)`),
	regexp.MustCompile(`(?i)Mã tra cứu(?:\s*HĐĐT)?(?:\s*này)?[:\s]*([A-Za-z0-9_]+)`),
	regexp.MustCompile(`(?i)Mã tra cứu\(Invoice code\)[:\s]*([A-Za-z0-9_]+)`),
	regexp.MustCompile(`(?i)Mã số bí mật[:\s]*([A-Za-z0-9_]+)`),
	regexp.MustCompile(`(?i)Security Code\)[:\s]*([A-Z0-9]+)`),
	regexp.MustCompile(`(?i)Mã tra cứu[:\s]*([A-Za-z0-9]+)`),
	regexp.MustCompile(`(?i)[Ll]ookup\s*code[):\s]*([A-Za-z0-9]+)`),
}

// Seller tax id captures allow soft hyphens (\u00AD) and spaces: some
// providers letter-space the digits.
var taxIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Mã số thuế\s*\([Tt]ax\s*code\)[:\s]*([\d\-\x{00AD}\s]+)`),
	regexp.MustCompile(`(?i)(?:MST|Mã số thuế)[/\s]*\([Tt]ax [Cc]ode\)[:\s]*([\d\-\x{00AD}\s]+)`),
	regexp.MustCompile(`(?i)MST/CCCD[^:]*[:\s]*([\d\-\x{00AD}\s]+)`),
	regexp.MustCompile(`(?i)(?:MST|Mã số thuế)[:\s]*([\d\-\x{00AD}\s]+)`),
}

var taxAuthorityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Mã\s*(?:của\s*)?[Cc]ơ quan thuế[:\s]*([A-Za-z0-9\-\x{00AD}]+)`),
	regexp.MustCompile(`(?i)Mã\s*(?:của\s*)?[Cc]ơ quan thuế\s*\([Tt]ax authority code\)[:\s]*([A-Za-z0-9\-\x{00AD}]+)`),
	regexp.MustCompile(`(?i)Mã\s*CQT\s*\([Cc]ode\)[:\s]*([A-Za-z0-9\-\x{00AD}]+)`),
	regexp.MustCompile(`(?i)Mã\s*CQT[:\s]*([A-Za-z0-9\-\x{00AD}]+)`),
	regexp.MustCompile(`(?i)Tax authority code[:\s]*([A-Za-z0-9\-\x{00AD}]+)`),
}

var lookupURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Tra cứu hóa đơn tại\s*\([^)]+\)[:\s]*(https?://\S+)`),
	regexp.MustCompile(`(?i)Tra cứu hóa đơn tại[:\s]*(https?://\S+)`),
	regexp.MustCompile(`(?i)(?:Tra cứu[^:]*tại|Trang tra cứu|website)[:\s]*(https?://\S+)`),
	regexp.MustCompile(`(?i)(https?://\S*(?:tracuu|tra-cuu|invoice|vnpt-invoice|minvoice)\S*)`),
}

var preTaxPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Cộng tiền hàng[^:]*[:\s]*([\d.,]+)`),
	regexp.MustCompile(`(?i)Cộng ti[êề]n hàng[^:]*[:\s]*([\d.,]+)`),
	regexp.MustCompile(`(?i)Tổng tiền chưa thuế[^:]*[:\s]*([\d.,]+)`),
	regexp.MustCompile(`(?i)Thành ti[êềẫ]n trước thuế[^:]*[:\s]*([\d.,]+)`),
	regexp.MustCompile(`(?i)Amount before VAT[^:]*[:\s]*([\d.,]+)`),
	regexp.MustCompile(`(?i)[Tt]otal amount[^:]*[:\s]*([\d.,]+)`),
	regexp.MustCompile(`(?i)Sub total[^:]*[:\s]*([\d.,]+)`),
}

var taxAmountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Tổng tiền thuế GTGT \d+%[:\s]*([\d.,]+)`),
	regexp.MustCompile(`(?i)\|?Tiền thu[êế] GTGT\s*\(\s*\d+\s*%\s*\)\s*([\d.,]+)`),
	regexp.MustCompile(`(?i)\|?Tiền thu[êế] GTGT[^:]*[:\s]+(\d[\d.,]+)`),
	regexp.MustCompile(`(?i)Tiền thuế\s*\(VAT\s*Amount\)[^:]*[:\s]*([\d.,]+)`),
	regexp.MustCompile(`(?i)Tổng tiền thuế[^:]*[:\s]*([\d.,]+)`),
	regexp.MustCompile(`(?i)Tiền thu[êế] GTGT[^:]*[:\s]+(\d[\d.,]+)`),
	regexp.MustCompile(`(?i)VAT amount[^:]*[:\s]*([\d.,]+)`),
	regexp.MustCompile(`(?i)Cộng tiền thuế GTGT[^:]*[:\s]*([\d.,]+)`),
}

// Summary rows carrying three columns (pre-tax, VAT, total) capture three
// groups; those rows are the most reliable source and overwrite earlier
// captures.
var postTaxPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Tổng tiền chịu thuế suất.*[:\s]*[\d.,]*%\s+([\d.,]+)\s+([\d.,]+)\s+([\d.,]+)`),
	regexp.MustCompile(`(?i)Tổng cộng\s*\(Total amount\)\s*[:]\s*([\d.,]+)\s+([\d.,]+)\s+([\d.,]+)`),
	regexp.MustCompile(`(?i)Tổng\s*cộng\s*\([Tt]otal\)?[:\s]*([\d.,]+)\s+([\d.,]+)\s+([\d.,]+)`),
	regexp.MustCompile(`(?i)Tổngcộng[:\s]*([\d.,]+)\s+([\d.,]+)\s+([\d.,]+)`),
	regexp.MustCompile(`(?i)Tổng cộng\s*[:]\s*([\d.,]+)\s+([\d.,]+)\s+([\d.,]+)`),
	regexp.MustCompile(`(?i)Tổng cộng tiền thanh toán\s*\(Total amount\)\s*([\d.,\s]+)`),
	regexp.MustCompile(`(?i)[Tt]ổng\s*tiền\s*thanh\s*toán\s*\([^)]+\)[:\s]*([\d.,]+)`),
	regexp.MustCompile(`(?i)[IT].{1,3}ng\s*số\s*ti[êề]n\s*thanh\s*toán[:\s]*([\d.,]+)`),
	regexp.MustCompile(`(?i)Cộng tiền hàng hóa, dịch vụ[:\s]*[\d.,]+\s+[\d.,]+\s+([\d.,]+)`),
	regexp.MustCompile(`(?i)[Tt]ổng\s*cộng\s*tiền\s*thanh\s*toán[^:]*[:\s]*([\d.,]+)`),
	regexp.MustCompile(`(?i)[Tt]otal\s*payment[^:]*[:\s]*([\d.,]+)`),
	regexp.MustCompile(`(?i)TỔNG CỘNG TIỀN THANH TOÁN[^:]*[:\s]*([\d.,]+)`),
	regexp.MustCompile(`(?i)Tổng cộng[:\s]+([\d.,]+)\s+[\d.,]+\s+([\d.,]+)`),
	regexp.MustCompile(`(?i)thuế suất:\s*\d+%\s+([\d.,]+)\s+([\d.,]+)\s+([\d.,]+)`),
}

var (
	directSalesPattern = regexp.MustCompile(`(?i)Cộng tiền bán hàng hóa, dịch vụ[:\s]*([\d.,]+)`)
	preAndVATPattern   = regexp.MustCompile(`(?i)Cộng tiền hàng hóa, dịch vụ[:\s]*([\d.,]+)\s+([\d.,]+)`)
	salesTotalPattern  = regexp.MustCompile(`Cộng tiền bán hàng[^:]*[:\s]*([\d.,]+)`)
	filenamePartSplit  = regexp.MustCompile(`[_\-\s]`)
)

// extractDate finds the issue date and renders it day/month/year with the
// digits as captured.
func extractDate(text string) string {
	for _, p := range datePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1] + "/" + m[2] + "/" + m[3]
		}
	}
	return ""
}

// extractInvoiceNumber runs the labeled cascade, falling back to the last
// long digit run in the file name. The fallback is best effort: batch
// inputs are conventionally named with the invoice number at the end.
func extractInvoiceNumber(text, fileName string) string {
	for _, p := range invoiceNumberPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}

	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	var nums []string
	for _, part := range filenamePartSplit.Split(base, -1) {
		if isDigits(part) && len(part) > 2 {
			nums = append(nums, part)
		}
	}
	if len(nums) > 0 {
		return nums[len(nums)-1]
	}
	return ""
}

// sellerRejectMarkers disqualify a capture that grabbed footer or address
// text instead of the seller name.
var sellerRejectMarkers = []string{
	"mã nhận hóa đơn", "code for checking", "tra cứu tại", "địa chỉ", "address",
}

var sellerPlaceholders = map[string]bool{
	"(seller)": true, "seller": true, "người bán": true, "tên đơn vị": true,
}

var companyTypeMarkers = []string{
	"CÔNG TY", "TẬP ĐOÀN", "CHI NHÁNH", "NHÀ HÀNG", "DNTN", "HỘ KINH DOANH",
}

var companyExcludeMarkers = []string{
	"HÓA ĐƠN", "CỘNG HÒA", "ĐỘC LẬP", "TÊN NGƯỜI MUA", "TÊN ĐƠN VỊ:",
	"PHÂN PHỐI TỔNG HỢP DẦU KHÍ",
}

// extractSeller resolves the selling company name. The labeled cascade
// runs first; provider layouts that put the name above the tax-code line
// or only in the signature footer are handled by two fallbacks.
func extractSeller(text string) string {
	for _, p := range sellerPatterns {
		loc := p.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		seller := strings.TrimSpace(text[loc[2]:loc[3]])

		// VNPT splits long names across two physical lines.
		rest := text[loc[1]:]
		if nl := nextLinePattern.FindStringSubmatch(rest); nl != nil {
			nextLine := strings.TrimSpace(nl[1])
			tail := seller
			if r := []rune(seller); len(r) > 15 {
				tail = string(r[len(r)-15:])
			}
			if strings.HasSuffix(seller, ":") || strings.HasSuffix(seller, "(") ||
				strings.Contains(tail, "DOANH NGHIỆP") {
				seller = seller + " " + nextLine
			}
		}

		seller = strings.ReplaceAll(seller, "\n", " ")
		seller = sellerPrefixPattern.ReplaceAllString(seller, "")
		seller = sellerPunctPattern.ReplaceAllString(seller, "")
		seller = sellerTaxTailPattern.ReplaceAllString(seller, "")
		seller = sellerMSTTailPattern.ReplaceAllString(seller, "")
		seller = sellerAddrPattern.ReplaceAllString(seller, "")

		if containsAnyFold(seller, sellerRejectMarkers) {
			continue
		}
		canon := strings.TrimSpace(strings.ReplaceAll(strings.ToLower(seller), ":", ""))
		if sellerPlaceholders[canon] {
			continue
		}
		if len([]rune(seller)) > 5 {
			return seller
		}
	}

	if s := sellerBeforeTaxCode(text); s != "" {
		return s
	}
	return sellerFromSignature(text)
}

// sellerBeforeTaxCode handles layouts (MISA) where the company name is the
// document's first line, right above the "Mã số thuế" line.
func sellerBeforeTaxCode(text string) string {
	mstPos := strings.Index(text, "Mã số thuế")
	if mstPos <= 0 {
		return ""
	}

	var lines []string
	for _, l := range strings.Split(text[:mstPos], "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}

	limit := len(lines)
	if limit > 6 {
		limit = 6
	}
	for i := 0; i < limit; i++ {
		line := lines[i]
		if len([]rune(line)) <= 10 {
			continue
		}
		upper := strings.ToUpper(line)
		if !containsAny(upper, companyTypeMarkers) {
			continue
		}
		if containsAny(upper, companyExcludeMarkers) {
			continue
		}
		if i+1 < len(lines) {
			next := lines[i+1]
			if next != "" && !strings.Contains(next, "Mã số") && !strings.Contains(next, "Địa chỉ") {
				shortNoColon := len([]rune(next)) < 40 && !strings.Contains(next, ":")
				if (isUpperString(next) || shortNoColon) &&
					!strings.Contains(strings.ToUpper(next), "PHÂN PHỐI") {
					line = line + " " + next
				}
			}
		}
		return line
	}
	return ""
}

// sellerFromSignature reads the digital-signature footer ("Ký bởi: CÔNG TY
// ..."), accepting only captures that read like a company name.
func sellerFromSignature(text string) string {
	m := signedByPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	signer := strings.TrimSpace(strings.ReplaceAll(m[1], "\n", " "))
	if len([]rune(signer)) <= 5 {
		return ""
	}
	if !containsAny(strings.ToUpper(signer), companyTypeMarkers[:5]) {
		return ""
	}
	if containsAnyFold(signer, []string{"địa chỉ", "address", "mã số"}) {
		return ""
	}
	return signer
}

func extractSerial(text string) string {
	for _, p := range serialPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// extractLookupCode returns the lookup code and, when a capture is too long
// to be one (providers reuse the label for the 35+ character tax-authority
// code), that overflow capture for the CQT field.
func extractLookupCode(text string) (code, overflow string) {
	for _, p := range lookupCodePatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		c := m[1]
		if len(c) >= 5 && len(c) <= 35 {
			return c, overflow
		}
		if len(c) > 35 && overflow == "" {
			overflow = c
		}
	}
	return "", overflow
}

// extractTaxID finds the seller's tax code: the first plausible capture in
// the document (the buyer's code appears later).
func extractTaxID(text string) string {
	softHyphen := "\u00AD"
	for _, p := range taxIDPatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			clean := strings.ReplaceAll(m[1], softHyphen, "")
			clean = strings.TrimSpace(strings.ReplaceAll(clean, " ", ""))
			if len(clean) >= 10 && strings.ContainsAny(clean, "0123456789") {
				return clean
			}
		}
	}
	return ""
}

func extractTaxAuthorityCode(text string) string {
	for _, p := range taxAuthorityPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.ReplaceAll(strings.TrimSpace(m[1]), "\u00AD", "-")
		}
	}
	return ""
}

func extractLookupURL(text string) string {
	for _, p := range lookupURLPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimRight(m[1], ".,")
		}
	}
	return ""
}

// amounts carries the three raw monetary captures between extraction
// phases. Fields stay in captured form ("1.800.000") until formatting.
type amounts struct {
	pre  string
	tax  string
	post string
}

// extractAmounts runs the three totals cascades plus the special-case
// repairs for direct-sales invoices and combined summary lines.
func extractAmounts(text string) amounts {
	var a amounts

	for _, p := range preTaxPatterns {
		if m := p.FindAllStringSubmatch(text, -1); m != nil {
			a.pre = m[len(m)-1][1]
			break
		}
	}

	for _, p := range taxAmountPatterns {
		if m := p.FindAllStringSubmatch(text, -1); m != nil {
			a.tax = m[len(m)-1][1]
			break
		}
	}

	for _, p := range postTaxPatterns {
		ms := p.FindAllStringSubmatch(text, -1)
		if ms == nil {
			continue
		}
		m := ms[len(ms)-1]
		switch {
		case p.NumSubexp() >= 3:
			// Full summary row: pre, VAT, total. More reliable than the
			// per-label captures, so overwrite.
			a.pre = m[1]
			a.tax = m[2]
			a.post = m[p.NumSubexp()]
		case p.NumSubexp() == 2:
			a.post = m[p.NumSubexp()]
			if a.pre == "" {
				a.pre = m[1]
			}
		default:
			val := strings.TrimSpace(m[1])
			parts := strings.Fields(val)
			if len(parts) >= 3 && allMoneyRunes(strings.Join(parts, "")) {
				// Multi-column total line collapsed into one capture:
				// the last three numbers are pre, VAT, total.
				a.post = parts[len(parts)-1]
				a.tax = parts[len(parts)-2]
				a.pre = parts[len(parts)-3]
			} else {
				a.post = val
			}
		}
		break
	}

	// Direct-sales invoices (Hộ Kinh Doanh) total under a different label;
	// the goods total is the amount to pay.
	if a.post == "" || a.pre == "" {
		if m := directSalesPattern.FindStringSubmatch(text); m != nil {
			if a.post == "" {
				a.post = m[1]
			}
			if a.pre == "" {
				a.pre = m[1]
			}
		}
	}

	// A "Cộng tiền hàng hóa, dịch vụ: A B" line carries rounded pre-tax
	// and VAT side by side; prefer it over whatever matched above.
	if m := preAndVATPattern.FindStringSubmatch(text); m != nil {
		a.pre = m[1]
		a.tax = m[2]
	}

	// Sales invoices carry no VAT: the goods total is the payment total.
	if a.post == "" && a.pre != "" {
		if strings.Contains(text, "SALES INVOICE") || strings.Contains(text, "HÓA ĐƠN BÁN HÀNG") {
			a.post = a.pre
		} else if m := salesTotalPattern.FindStringSubmatch(text); m != nil {
			a.post = m[1]
		}
	}

	return a
}

// reconcile enforces pre + tax = post over the captured amounts. Values
// under 1000 đồng are artifacts (tax rates, quantities) and are discarded
// first.
func (a *amounts) reconcile() {
	for _, v := range []*string{&a.pre, &a.tax, &a.post} {
		if n, ok := ParseMoney(*v); ok && n < 1000 {
			*v = ""
		}
	}

	if a.post == "" {
		before, beforeOK := ParseMoney(a.pre)
		vat, vatOK := ParseMoney(a.tax)
		switch {
		case beforeOK && vatOK:
			a.post = FormatMoney(before + vat)
		case beforeOK:
			a.post = a.pre
		}
	}

	if a.post != "" && a.pre == "" {
		after, afterOK := ParseMoney(a.post)
		vat, vatOK := ParseMoney(a.tax)
		switch {
		case afterOK && (!vatOK || vat == 0):
			a.pre = a.post
		case afterOK && vatOK:
			a.pre = FormatMoney(after - vat)
		}
	}
}

func allMoneyRunes(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != ',' {
			return false
		}
	}
	return s != ""
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func isUpperString(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
