package domain

import (
	"errors"
	"time"
)

var ErrAssignmentNotFound = errors.New("assignment not found")
var ErrAssignmentExists = errors.New("sdr already assigned to this client")

// Assignment binds one SDR to one client (unique pair) together with the
// subset of that client's licenses the SDR works, plus a free-form chat
// history blob used by the dashboard chat widget.
type Assignment struct {
	ID          string    `json:"id" bson:"-"`
	SdrID       string    `json:"sdrId" bson:"sdrId"`
	ClientID    string    `json:"clientId" bson:"clientId"`
	LicenseIDs  []string  `json:"licenseIds" bson:"licenseIds"`
	ChatHistory string    `json:"chatHistory,omitempty" bson:"chatHistory,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
