package models

import "github.com/google/uuid"

// TipAwardPoints is the fixed award paid once per submitted tip. Paid on
// submission, not on approval: a later rejection does not claw it back.
const TipAwardPoints = 10

// PointEntry is one row of the point ledger.
type PointEntry struct {
	Model
	UserID uint      `json:"user_id" gorm:"index"`
	TipID  uuid.UUID `json:"tip_id" gorm:"type:uuid"`
	Points int       `json:"points"`
	Reason string    `json:"reason"`
}

type LeaderboardEntry struct {
	UserID    uint   `json:"user_id"`
	Fullname  string `json:"fullname"`
	AvatarURL string `json:"avatar_url"`
	Points    int    `json:"points"`
}

// PointConversionRate holds the baht-per-point rate shown on profiles.
type PointConversionRate struct {
	Model
	ConversionRate int `json:"conversion_rate"`
}

const DefaultConversionRate = 1000
