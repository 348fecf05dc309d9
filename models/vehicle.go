package models

import (
	"time"

	"github.com/google/uuid"
)

// Lost-car lifecycle states. Transitions are not constrained beyond
// membership in this set; the owner or admin tooling may set any of them.
const (
	StatusMissing   = "missing"
	StatusFound     = "found"
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

func IsKnownStatus(s string) bool {
	switch s {
	case StatusMissing, StatusFound, StatusActive, StatusCancelled:
		return true
	}
	return false
}

// LostCar is a user-submitted report describing a lost vehicle.
type LostCar struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	LicensePlate     string     `json:"license_plate"`
	Brand            string     `json:"brand"`
	Model            string     `json:"model"`
	Color            string     `json:"color"`
	LastSeenLocation string     `json:"last_seen_location"`
	Subdistrict      string     `json:"subdistrict"`
	District         string     `json:"district"`
	Province         string     `json:"province"`
	LostDate         *time.Time `json:"lost_date"`
	Contact          string     `json:"contact"`
	Reward           int        `json:"reward" gorm:"default:0"`
	PoliceReportURL  string     `json:"police_report_url"`
	IsAnonymous      bool       `json:"is_anonymous"`
	OwnerName        string     `json:"owner_name"`
	OwnerID          uint       `json:"owner_id" gorm:"index"`
	Status           string     `json:"status" gorm:"default:missing"`
	Images           []CarImage `json:"images" gorm:"foreignKey:LostCarID;constraint:OnDelete:CASCADE"`
	Tips             []Tip      `json:"tips" gorm:"foreignKey:LostCarID;constraint:OnDelete:CASCADE"`
}

// CarImage is a publicly resolvable photo reference attached to a report.
type CarImage struct {
	Model
	LostCarID uuid.UUID `json:"lost_car_id" gorm:"type:uuid;index"`
	ImageURL  string    `json:"image_url"`
}

type CreateReportRequest struct {
	LicensePlate     string `json:"license_plate" form:"license_plate" binding:"required" conform:"trim"`
	Brand            string `json:"brand" form:"brand" conform:"trim"`
	Model            string `json:"model" form:"model" conform:"trim"`
	Color            string `json:"color" form:"color" conform:"trim"`
	LastSeenLocation string `json:"last_seen_location" form:"last_seen_location" conform:"trim"`
	Subdistrict      string `json:"subdistrict" form:"subdistrict" conform:"trim"`
	District         string `json:"district" form:"district" conform:"trim"`
	Province         string `json:"province" form:"province" conform:"trim"`
	LostDate         string `json:"lost_date" form:"lost_date"`
	Contact          string `json:"contact" form:"contact" conform:"trim"`
	Reward           int    `json:"reward" form:"reward"`
	Anonymous        bool   `json:"anonymous" form:"anonymous"`
}

type ReportStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SearchResponse is the paginated listing payload.
type SearchResponse struct {
	Data       []LostCar `json:"data"`
	TotalCount int64     `json:"total_count"`
	TotalPages int       `json:"total_pages"`
	Page       int       `json:"page"`
	Pages      []string  `json:"pages"`
}
