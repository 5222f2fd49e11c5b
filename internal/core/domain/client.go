package domain

import (
	"errors"
	"time"
)

// PaymentStatus reflects the client's standing against its invoices.
type PaymentStatus string

const (
	PaymentCurrent PaymentStatus = "CURRENT"
	PaymentPending PaymentStatus = "PENDING"
	PaymentOverdue PaymentStatus = "OVERDUE"
)

var ErrClientNotFound = errors.New("client not found")

// Client is a managed business account. Clients are never physically
// deleted; IsActive is flipped instead.
type Client struct {
	ID              string        `json:"id" bson:"-"`
	BusinessName    string        `json:"businessName" bson:"businessName"`
	ContactName     string        `json:"contactName" bson:"contactName"`
	ContactEmail    string        `json:"contactEmail" bson:"contactEmail"`
	ContactPhone    string        `json:"contactPhone,omitempty" bson:"contactPhone,omitempty"`
	PlanID          string        `json:"planId,omitempty" bson:"planId,omitempty"`
	LicenseCount    int           `json:"licenseCount" bson:"licenseCount"`
	PricePerLicense float64       `json:"pricePerLicense" bson:"pricePerLicense"`
	Currency        string        `json:"currency" bson:"currency"`
	PaymentStatus   PaymentStatus `json:"paymentStatus" bson:"paymentStatus"`
	IsActive        bool          `json:"isActive" bson:"isActive"`
	CreatedAt       time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt" bson:"updatedAt"`
}
