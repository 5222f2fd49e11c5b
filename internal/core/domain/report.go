package domain

import (
	"errors"
	"time"
)

var ErrReportNotFound = errors.New("report not found")

// ReportMetrics is the typed metrics snapshot carried by a report.
type ReportMetrics struct {
	CallsMade      int    `json:"callsMade" bson:"callsMade"`
	EmailsSent     int    `json:"emailsSent" bson:"emailsSent"`
	MeetingsBooked int    `json:"meetingsBooked" bson:"meetingsBooked"`
	LeadsGenerated int    `json:"leadsGenerated" bson:"leadsGenerated"`
	Notes          string `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Report is a periodic metrics snapshot for a client, optionally scoped to
// a single license.
type Report struct {
	ID          string        `json:"id" bson:"-"`
	ClientID    string        `json:"clientId" bson:"clientId"`
	LicenseID   string        `json:"licenseId,omitempty" bson:"licenseId,omitempty"`
	PeriodStart time.Time     `json:"periodStart" bson:"periodStart"`
	PeriodEnd   time.Time     `json:"periodEnd" bson:"periodEnd"`
	Metrics     ReportMetrics `json:"metrics" bson:"metrics"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
}
