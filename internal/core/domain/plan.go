package domain

import (
	"errors"
	"time"
)

// BillingPeriod is the cadence a plan is invoiced on.
type BillingPeriod string

const (
	BillingMonthly   BillingPeriod = "MONTHLY"
	BillingQuarterly BillingPeriod = "QUARTERLY"
	BillingYearly    BillingPeriod = "YEARLY"
)

var ErrPlanNotFound = errors.New("plan not found")
var ErrPlanInUse = errors.New("plan is assigned to one or more clients")

// Plan is a pricing template clients reference.
type Plan struct {
	ID              string        `json:"id" bson:"-"`
	Name            string        `json:"name" bson:"name"`
	Description     string        `json:"description,omitempty" bson:"description,omitempty"`
	PricePerLicense float64       `json:"pricePerLicense" bson:"pricePerLicense"`
	Currency        string        `json:"currency" bson:"currency"`
	BillingPeriod   BillingPeriod `json:"billingPeriod" bson:"billingPeriod"`
	IsActive        bool          `json:"isActive" bson:"isActive"`
	CreatedAt       time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt" bson:"updatedAt"`
}
