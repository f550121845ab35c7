package models

import "time"

// Lock audit actions.
const (
	LockActionLock   = "lock"
	LockActionUnlock = "unlock"
)

// LockEvent is one entry in a month lock's audit trail.
type LockEvent struct {
	Action string    `bson:"action" json:"action"`
	By     string    `bson:"by" json:"by"`
	At     time.Time `bson:"at" json:"at"`
}

// MonthLock marks a (clinic, month) as administratively closed for edits.
// The calculators treat it as a read-only gate; every write path must refuse
// edits while Locked is true.
type MonthLock struct {
	ClinicID string      `bson:"clinic_id" json:"clinicId"`
	Month    string      `bson:"month" json:"month"`
	Locked   bool        `bson:"locked" json:"locked"`
	LockedBy string      `bson:"locked_by,omitempty" json:"lockedBy,omitempty"`
	LockedAt time.Time   `bson:"locked_at,omitempty" json:"lockedAt,omitempty"`
	History  []LockEvent `bson:"history,omitempty" json:"history,omitempty"`
}
