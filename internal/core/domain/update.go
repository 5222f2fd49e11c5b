package domain

import (
	"errors"
	"time"
)

// UpdateType classifies an SDR-authored interaction.
type UpdateType string

const (
	UpdateCall    UpdateType = "call"
	UpdateEmail   UpdateType = "email"
	UpdateMeeting UpdateType = "meeting"
	UpdateNote    UpdateType = "note"
	UpdateReport  UpdateType = "report"
	UpdateOther   UpdateType = "other"
)

var ErrUpdateNotFound = errors.New("update not found")

// ValidUpdateType reports whether t is a member of the closed type set.
func ValidUpdateType(t UpdateType) bool {
	switch t {
	case UpdateCall, UpdateEmail, UpdateMeeting, UpdateNote, UpdateReport, UpdateOther:
		return true
	}
	return false
}

// Update is an SDR-authored event against a client. VisibleToClient
// controls portal visibility; ReadByClient tracks acknowledgement.
type Update struct {
	ID              string     `json:"id" bson:"-"`
	SdrID           string     `json:"sdrId" bson:"sdrId"`
	ClientID        string     `json:"clientId" bson:"clientId"`
	Type            UpdateType `json:"type" bson:"type"`
	Title           string     `json:"title" bson:"title"`
	Body            string     `json:"body,omitempty" bson:"body,omitempty"`
	VisibleToClient bool       `json:"visibleToClient" bson:"visibleToClient"`
	ReadByClient    bool       `json:"readByClient" bson:"readByClient"`
	CreatedAt       time.Time  `json:"createdAt" bson:"createdAt"`
}
