package models

import (
	"time"

	"github.com/google/uuid"
)

// Tip review states. Only an admin moves a tip out of pending.
const (
	TipPending  = "pending"
	TipApproved = "approved"
	TipRejected = "rejected"
)

// Tip is a user-submitted lead about a lost car's whereabouts. Message and
// location are immutable after creation; only the status changes.
type Tip struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LostCarID uuid.UUID `json:"lost_car_id" gorm:"type:uuid;index"`
	TipperID  uint      `json:"tipper_id"`
	Message   string    `json:"message"`
	Location  string    `json:"location"`
	ImageURL  string    `json:"image_url"`
	Status    string    `json:"status" gorm:"default:pending"`
}

type TipRequest struct {
	Message  string `json:"message" binding:"required" conform:"trim"`
	Location string `json:"location" conform:"trim"`
	ImageURL string `json:"image_url"`
}

// PendingTipView is the admin dashboard row: a tip joined with the report it
// belongs to.
type PendingTipView struct {
	Tip
	VehicleLicense string `json:"vehicle_license"`
	VehicleReward  int    `json:"vehicle_reward"`
}
