package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoiceSent      InvoiceStatus = "SENT"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceOverdue   InvoiceStatus = "OVERDUE"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// Invoice is a billing header. TotalAmount is the sum of item totals at
// creation time; items are immutable post-creation, so the header total is
// authoritative.
type Invoice struct {
	InvoiceID         string          `json:"invoiceID"`
	InvoiceNumber     string          `json:"invoiceNumber"` // Unique
	SupplierAccountID string          `json:"supplierAccountID"`
	IssueDate         time.Time       `json:"issueDate"`
	DueDate           time.Time       `json:"dueDate"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	TaxAmount         decimal.Decimal `json:"taxAmount"`
	Status            InvoiceStatus   `json:"status"`
	Items             []InvoiceItem   `json:"items,omitempty"`
	AuditFields
}

// InvoiceItem is one immutable line of an invoice.
type InvoiceItem struct {
	ItemID      string          `json:"itemID"`
	InvoiceID   string          `json:"invoiceID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}
