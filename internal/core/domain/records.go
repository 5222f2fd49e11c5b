package domain

import (
	"errors"
	"time"
)

var ErrNoteNotFound = errors.New("note not found")
var ErrNotificationNotFound = errors.New("notification not found")
var ErrContractNotFound = errors.New("contract not found")

// AdminNote is an internal annotation on a client, never shown in the
// client portal.
type AdminNote struct {
	ID        string    `json:"id" bson:"-"`
	AdminID   string    `json:"adminId" bson:"adminId"`
	ClientID  string    `json:"clientId" bson:"clientId"`
	Body      string    `json:"body" bson:"body"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// AuditEntry records a sensitive action for later review. Entries are
// written asynchronously and are read-only through the API.
type AuditEntry struct {
	ID         string    `json:"id" bson:"-"`
	ActorID    string    `json:"actorId" bson:"actorId"`
	ActorRole  string    `json:"actorRole" bson:"actorRole"`
	Action     string    `json:"action" bson:"action"`
	TargetType string    `json:"targetType" bson:"targetType"`
	TargetID   string    `json:"targetId,omitempty" bson:"targetId,omitempty"`
	Detail     string    `json:"detail,omitempty" bson:"detail,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

// Notification is a per-user inbox item surfaced in the dashboard header.
type Notification struct {
	ID        string    `json:"id" bson:"-"`
	UserID    string    `json:"userId" bson:"userId"`
	Kind      string    `json:"kind" bson:"kind"`
	Title     string    `json:"title" bson:"title"`
	Body      string    `json:"body,omitempty" bson:"body,omitempty"`
	Read      bool      `json:"read" bson:"read"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// ContractStatus is the lifecycle state of a contract.
type ContractStatus string

const (
	ContractDraft   ContractStatus = "DRAFT"
	ContractActive  ContractStatus = "ACTIVE"
	ContractExpired ContractStatus = "EXPIRED"
)

// Contract is a service agreement attached to a client.
type Contract struct {
	ID        string         `json:"id" bson:"-"`
	ClientID  string         `json:"clientId" bson:"clientId"`
	Title     string         `json:"title" bson:"title"`
	StartDate time.Time      `json:"startDate" bson:"startDate"`
	EndDate   *time.Time     `json:"endDate,omitempty" bson:"endDate,omitempty"`
	AutoRenew bool           `json:"autoRenew" bson:"autoRenew"`
	Status    ContractStatus `json:"status" bson:"status"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
}
