package extract

import "strings"

// Extractor turns the raw page texts of one invoice document into an
// InvoiceRecord plus its line items. It is pure over its config and safe
// for concurrent use; a failed document yields a degraded record rather
// than an error.
type Extractor struct {
	cfg        *Config
	items      *ItemParser
	junk       *JunkClassifier
	classifier *Classifier
}

// NewExtractor builds an extraction engine over cfg. The config is
// captured by reference and must not be mutated afterwards.
func NewExtractor(cfg *Config) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	junk := NewJunkClassifier(cfg)
	return &Extractor{
		cfg:        cfg,
		items:      NewItemParser(cfg, junk),
		junk:       junk,
		classifier: NewClassifier(cfg),
	}, nil
}

// Extract processes one document. Pages are joined in order; a document
// with no extractable text (scanned image PDFs) produces a record with
// every field set to the sentinel and no items.
func (e *Extractor) Extract(fileName string, pages []string) (InvoiceRecord, []LineItem) {
	text := strings.Join(pages, "\n")
	if strings.TrimSpace(text) == "" {
		return NewDegradedRecord(fileName), nil
	}

	items := e.items.Parse(text)

	amts := extractAmounts(text)
	amts.reconcile()

	lookup, overflow := extractLookupCode(text)
	cqt := extractTaxAuthorityCode(text)
	if cqt == "" {
		cqt = overflow
	}

	var descriptions []string
	for _, item := range items {
		descriptions = append(descriptions, item.Description)
	}
	category := e.cfg.FallbackCategory
	if len(items) > 0 {
		category = e.classifier.Classify(strings.Join(descriptions, " "))
	}

	rec := InvoiceRecord{
		FileName:         fileName,
		IssueDate:        fieldOf(extractDate(text)),
		InvoiceNumber:    fieldOf(extractInvoiceNumber(text, fileName)),
		SellerName:       fieldOf(extractSeller(text)),
		SerialCode:       fieldOf(extractSerial(text)),
		LookupCode:       fieldOf(lookup),
		TaxAuthorityCode: fieldOf(cqt),
		SellerTaxID:      fieldOf(extractTaxID(text)),
		PreTaxAmount:     moneyFieldOf(amts.pre),
		TaxAmount:        moneyFieldOf(amts.tax),
		PostTaxAmount:    moneyFieldOf(amts.post),
		LookupURL:        fieldOf(extractLookupURL(text)),
		Category:         NewField(category),
	}
	return rec, items
}

// fieldOf wraps a raw capture: empty stays unset.
func fieldOf(v string) Field {
	if v == "" {
		return Field{}
	}
	return NewField(v)
}

// moneyFieldOf wraps a monetary capture in canonical comma format.
func moneyFieldOf(v string) Field {
	if v == "" {
		return Field{}
	}
	return NewField(normalizeNumber(v))
}
