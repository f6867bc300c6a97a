package domain

import "time"

// DateKey is the deterministic integer seed derived from a calendar date,
// encoded as year*10000 + month*100 + day. Two dates never collide for any
// realistic calendar range.
type DateKey int

// NewDateKey derives the key for t in UTC.
func NewDateKey(t time.Time) DateKey {
	t = t.UTC()
	return DateKey(t.Year()*10000 + int(t.Month())*100 + t.Day())
}

// Date returns the UTC midnight the key encodes.
func (k DateKey) Date() time.Time {
	n := int(k)
	return time.Date(n/10000, time.Month(n/100%100), n%100, 0, 0, 0, 0, time.UTC)
}

// DailyRotation is the day-scoped subset of shop items shown to all users.
// It is derived, never persisted: recomputable from DateKey alone.
type DailyRotation struct {
	DateKey DateKey       `json:"date_key"`
	Items   []CatalogItem `json:"items"`
}

// RotationSize is the number of items in a full daily rotation.
const RotationSize = 20
