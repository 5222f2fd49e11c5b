package domain

import (
	"errors"
	"time"
)

// LicenseStatus is the lifecycle state of a license.
type LicenseStatus string

const (
	LicenseActive LicenseStatus = "active"
	LicensePaused LicenseStatus = "paused"
)

var ErrLicenseNotFound = errors.New("license not found")

// License is a billable service unit belonging to one client. Licenses are
// the only entity with a physical delete.
type License struct {
	ID        string        `json:"id" bson:"-"`
	ClientID  string        `json:"clientId" bson:"clientId"`
	Status    LicenseStatus `json:"status" bson:"status"`
	StartDate time.Time     `json:"startDate" bson:"startDate"`
	EndDate   *time.Time    `json:"endDate,omitempty" bson:"endDate,omitempty"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}
