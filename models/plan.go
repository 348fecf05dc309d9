package models

import "time"

// Plan price types: fixed plans carry a set price, custom plans let the
// supporter choose the amount.
const (
	PriceTypeFixed  = "fixed"
	PriceTypeCustom = "custom"
)

// Plan is a support/subscription tier shown on the pricing page.
type Plan struct {
	Model
	Name      string `json:"name"`
	Price     int    `json:"price"`
	PriceType string `json:"price_type" gorm:"default:fixed"`
	Features  string `json:"features" gorm:"type:text"` // JSON array of feature strings
	Icon      string `json:"icon"`
}

// UserPlan records a plan selection or donation.
type UserPlan struct {
	Model
	UserID     uint      `json:"user_id" gorm:"index"`
	PlanID     uint      `json:"plan_id"`
	Price      int       `json:"price"`
	SelectedAt time.Time `json:"selected_at"`
}

type SelectPlanRequest struct {
	PlanID      uint `json:"plan_id" binding:"required"`
	CustomPrice int  `json:"custom_price"`
}
