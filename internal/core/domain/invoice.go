package domain

import (
	"errors"
	"time"
)

// InvoiceStatus is the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceGenerated InvoiceStatus = "GENERATED"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceOverdue   InvoiceStatus = "OVERDUE"
)

// invoiceTransitions: PAID is terminal. A paid invoice cannot be reopened
// through any write path; everything else may move freely between open
// states or to PAID.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceGenerated: {InvoicePaid, InvoiceOverdue},
	InvoiceOverdue:   {InvoicePaid, InvoiceGenerated},
}

var ErrInvoiceNotFound = errors.New("invoice not found")
var ErrInvoiceExists = errors.New("invoice already exists for this client and period")
var ErrInvoiceAlreadyPaid = errors.New("invoice already paid")
var ErrInvalidInvoiceStatus = errors.New("invalid invoice status transition")

// ValidInvoiceStatus reports whether s is a member of the closed status set.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceGenerated, InvoicePaid, InvoiceOverdue:
		return true
	}
	return false
}

// CanTransitionTo reports whether a status change from s to next is allowed.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range invoiceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Invoice belongs to one client and is unique per (client, month, year).
type Invoice struct {
	ID            string        `json:"id" bson:"-"`
	ClientID      string        `json:"clientId" bson:"clientId"`
	Month         int           `json:"month" bson:"month"`
	Year          int           `json:"year" bson:"year"`
	Amount        float64       `json:"amount" bson:"amount"`
	Currency      string        `json:"currency" bson:"currency"`
	TypeOfService string        `json:"typeOfService" bson:"typeOfService"`
	Description   string        `json:"description" bson:"description"`
	Status        InvoiceStatus `json:"status" bson:"status"`
	InvoiceDate   *time.Time    `json:"invoiceDate,omitempty" bson:"invoiceDate,omitempty"`
	DueDate       time.Time     `json:"dueDate" bson:"dueDate"`
	PaidAt        *time.Time    `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	FileID        string        `json:"fileId,omitempty" bson:"fileId,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// EffectiveDate is the date used for calendar placement: the explicit
// invoice date when set, otherwise the creation timestamp.
func (i *Invoice) EffectiveDate() time.Time {
	if i.InvoiceDate != nil && !i.InvoiceDate.IsZero() {
		return *i.InvoiceDate
	}
	return i.CreatedAt
}
