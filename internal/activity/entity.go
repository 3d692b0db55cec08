// AngelaMos | 2026
// entity.go

package activity

import (
	"time"
)

// Record is one user's activity on one calendar day. Date is the civil date
// held at UTC midnight; (UserID, Date) is unique.
type Record struct {
	UserID   string    `db:"user_id"`
	Date     time.Time `db:"activity_date"`
	Sessions int       `db:"sessions"`
	Points   int       `db:"points"`
}

type Interest struct {
	ID        string    `db:"id"         json:"id"`
	UserID    string    `db:"user_id"    json:"user_id"`
	Sport     string    `db:"sport"      json:"sport"`
	Level     string    `db:"level"      json:"level"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type SportCount struct {
	Sport string `db:"sport" json:"sport"`
	Count int    `db:"count" json:"count"`
}

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)
