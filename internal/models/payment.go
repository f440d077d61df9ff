package models

// Payment is a settlement record tied to a reservation on the remote ledger.
type Payment struct {
	ID                 int     `json:"id"`
	ReservationID      int     `json:"reservation_id"`
	UserID             int     `json:"user_id"`
	InvoiceID          int     `json:"invoice_id,omitempty"`
	MethodID           int     `json:"method_id"`
	Amount             float64 `json:"amount"`
	IssuedAt           string  `json:"issued_at"`
	Paid               bool    `json:"paid"`
	SourceAccount      string  `json:"source_account"`
	DestinationAccount string  `json:"destination_account"`
}

// Invoice is a billing record for a reservation.
type Invoice struct {
	ID            int     `json:"id"`
	ReservationID int     `json:"reservation_id"`
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Discount      float64 `json:"discount"`
	Email         string  `json:"email,omitempty"`
	IssuedAt      string  `json:"issued_at"`
	Active        bool    `json:"active"`
}

// InvoicePDF is the rendered document attached to an invoice.
type InvoicePDF struct {
	InvoiceID int    `json:"invoice_id"`
	URL       string `json:"url"`
	Ready     bool   `json:"ready"`
}

// PaymentDisplay is the denormalized record served to the payments view.
// Records with ID 0 are synthesized from locally confirmed reservations
// that the remote payment list has not caught up with yet.
type PaymentDisplay struct {
	ID                 int      `json:"id"`
	ReservationID      int      `json:"reservation_id"`
	InvoiceID          int      `json:"invoice_id,omitempty"`
	Amount             float64  `json:"amount"`
	Date               string   `json:"date"`
	State              string   `json:"state"`
	SourceAccount      string   `json:"source_account,omitempty"`
	DestinationAccount string   `json:"destination_account,omitempty"`
	Method             int      `json:"method"`
	Invoice            *Invoice `json:"invoice,omitempty"`
	PDFReady           bool     `json:"pdf_ready"`
	PDFURL             string   `json:"pdf_url,omitempty"`
}

// RegisterPaymentInput describes a payment to record against a reservation.
type RegisterPaymentInput struct {
	ReservationID      int
	UserID             int
	Amount             float64
	SourceAccount      string
	DestinationAccount string
	MethodID           int
}

// IssueInvoiceInput describes an invoice emission request.
type IssueInvoiceInput struct {
	ReservationID int
	FirstName     string
	LastName      string
	Email         string
	DocumentType  string
	Document      string
}

// BankAccount is an opaque third-party entity resolved by external account
// number before a transfer.
type BankAccount struct {
	AccountID int     `json:"account_id"`
	Balance   float64 `json:"balance"`
}

// TransferResult is the normalized outcome of a bank transaction. The bank
// replies in plain text; OK reflects the substring match the API documents.
type TransferResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}
