package domain

// DocumentInput is the input of an invoice document creation. Item id and
// gross price are forwarded to the upstream exactly as received.
type DocumentInput struct {
	ClientEmail any
	ItemID      any
	GrossPrice  any
	Notes       any
}

// DocumentMode is the fixed issuing mode for created documents.
const DocumentMode = "normal"

// DocumentReceipt is the projection of a created upstream document. Fields the
// upstream omits are rendered as null; extra upstream fields are dropped.
type DocumentReceipt struct {
	ID          any `json:"id"`
	Type        any `json:"type"`
	Number      any `json:"number"`
	Date        any `json:"date"`
	AmountGross any `json:"amount_gross"`
	AmountNet   any `json:"amount_net"`
	Hash        any `json:"hash"`
	ATCUD       any `json:"atcud"`
	QRCode      any `json:"qrcode"`
	Output      any `json:"output"`
	OutputData  any `json:"output_data"`
}

// NewDocumentReceipt projects an upstream document body.
func NewDocumentReceipt(raw any) DocumentReceipt {
	return DocumentReceipt{
		ID:          Field(raw, "id"),
		Type:        Field(raw, "type"),
		Number:      Field(raw, "number"),
		Date:        Field(raw, "date"),
		AmountGross: Field(raw, "amount_gross"),
		AmountNet:   Field(raw, "amount_net"),
		Hash:        Field(raw, "hash"),
		ATCUD:       Field(raw, "atcud"),
		QRCode:      Field(raw, "qrcode"),
		Output:      Field(raw, "output"),
		OutputData:  Field(raw, "output_data"),
	}
}

// Upstream error codes with a dedicated classification.
const (
	UpstreamErrorRegister       = "A001"
	UpstreamMessageTrialReached = "COMPANY_TRIAL_REACHED_LIMIT"
)
