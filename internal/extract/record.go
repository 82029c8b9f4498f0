package extract

// Unrecognized is the sentinel stored in every field of a document whose
// text could not be obtained at all. It is distinct from an unset field:
// an unset field means this one label was not found, the sentinel means
// the whole document defeated extraction.
const Unrecognized = "không nhận diện được"

// FieldState tracks how a field value was resolved.
type FieldState int

const (
	// FieldUnset means no detector matched for this field.
	FieldUnset FieldState = iota
	// FieldValue means the field holds an extracted value.
	FieldValue
	// FieldUnrecognized marks a document-level extraction failure.
	FieldUnrecognized
)

// Field is the per-field extraction result: a value, unset, or the
// document-level "unrecognized" sentinel. Callers branch on data instead
// of on errors.
type Field struct {
	value string
	state FieldState
}

// NewField returns a set field holding value.
func NewField(value string) Field {
	return Field{value: value, state: FieldValue}
}

// UnrecognizedField returns a field carrying the document-failure sentinel.
func UnrecognizedField() Field {
	return Field{value: Unrecognized, state: FieldUnrecognized}
}

// IsSet reports whether the field holds an extracted value.
func (f Field) IsSet() bool {
	return f.state == FieldValue && f.value != ""
}

// IsUnrecognized reports whether the field carries the document sentinel.
func (f Field) IsUnrecognized() bool {
	return f.state == FieldUnrecognized
}

// String returns the field value, the sentinel text, or "" when unset.
func (f Field) String() string {
	return f.value
}

// InvoiceRecord is the canonical extraction result for one invoice
// document. Monetary fields hold formatted strings ("1,800,000"); use
// ParseMoney to recover integers.
type InvoiceRecord struct {
	FileName         string
	degraded         bool
	IssueDate        Field
	InvoiceNumber    Field
	SellerName       Field
	SerialCode       Field
	LookupCode       Field
	TaxAuthorityCode Field
	SellerTaxID      Field
	PreTaxAmount     Field
	TaxAmount        Field
	PostTaxAmount    Field
	LookupURL        Field
	Category         Field
}

// NewDegradedRecord returns a record for a document whose text could not
// be extracted: every field except the file name carries the sentinel.
func NewDegradedRecord(fileName string) InvoiceRecord {
	u := UnrecognizedField()
	return InvoiceRecord{
		FileName:         fileName,
		degraded:         true,
		IssueDate:        u,
		InvoiceNumber:    u,
		SellerName:       u,
		SerialCode:       u,
		LookupCode:       u,
		TaxAuthorityCode: u,
		SellerTaxID:      u,
		PreTaxAmount:     u,
		TaxAmount:        u,
		PostTaxAmount:    u,
		LookupURL:        u,
		Category:         u,
	}
}

// IsDegraded reports whether this record came from a document whose text
// could not be extracted at all.
func (r InvoiceRecord) IsDegraded() bool {
	return r.degraded
}

// LineItem is one goods/services row of an invoice. Items belong to
// exactly one InvoiceRecord and have no independent lifecycle. Numeric
// fields keep their raw text when normalization fails rather than being
// dropped.
type LineItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Amount      string `json:"amount"`
}
