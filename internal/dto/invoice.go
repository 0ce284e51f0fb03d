package dto

import (
	"time"

	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest creates an invoice with its immutable line items.
type CreateInvoiceRequest struct {
	InvoiceNumber       string                     `json:"invoice_number" binding:"required"`
	SupplierAccountCode string                     `json:"supplier_account_code" binding:"required"`
	IssueDate           time.Time                  `json:"issue_date" binding:"required"`
	DueDate             time.Time                  `json:"due_date" binding:"required"`
	TaxAmount           *decimal.Decimal           `json:"tax_amount"`
	Items               []CreateInvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateInvoiceItemRequest is one line of an invoice request.
type CreateInvoiceItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// ChangeInvoiceStatusRequest moves the invoice to a new billing status.
type ChangeInvoiceStatusRequest struct {
	Status domain.InvoiceStatus `json:"status" binding:"required,oneof=DRAFT SENT PAID OVERDUE CANCELLED"`
}

// InvoiceResponse mirrors domain.Invoice.
type InvoiceResponse struct {
	InvoiceID         string                `json:"invoiceID"`
	InvoiceNumber     string                `json:"invoiceNumber"`
	SupplierAccountID string                `json:"supplierAccountID"`
	IssueDate         time.Time             `json:"issueDate"`
	DueDate           time.Time             `json:"dueDate"`
	TotalAmount       decimal.Decimal       `json:"totalAmount"`
	TaxAmount         decimal.Decimal       `json:"taxAmount"`
	Status            domain.InvoiceStatus  `json:"status"`
	Items             []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt         time.Time             `json:"createdAt"`
}

// InvoiceItemResponse mirrors domain.InvoiceItem.
type InvoiceItemResponse struct {
	ItemID      string          `json:"itemID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// ToInvoiceResponse converts a domain.Invoice to its DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		InvoiceID:         inv.InvoiceID,
		InvoiceNumber:     inv.InvoiceNumber,
		SupplierAccountID: inv.SupplierAccountID,
		IssueDate:         inv.IssueDate,
		DueDate:           inv.DueDate,
		TotalAmount:       inv.TotalAmount,
		TaxAmount:         inv.TaxAmount,
		Status:            inv.Status,
		CreatedAt:         inv.CreatedAt,
	}
	for _, item := range inv.Items {
		resp.Items = append(resp.Items, InvoiceItemResponse{
			ItemID:      item.ItemID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}
	return resp
}
