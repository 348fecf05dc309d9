package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/teerapatch/rodhai/models"
	"gorm.io/gorm"
)

type TipRepository interface {
	CreateTip(tip *models.Tip) error
	GetTipByID(id uuid.UUID) (*models.Tip, error)
	GetTipsByLostCar(lostCarID uuid.UUID) ([]models.Tip, error)
	UpdateTipStatus(id uuid.UUID, status string) error
	GetPendingTips() ([]models.PendingTipView, error)
}

type tipRepo struct {
	DB *gorm.DB
}

func NewTipRepo(db *GormDB) TipRepository {
	return &tipRepo{db.DB}
}

func (r *tipRepo) CreateTip(tip *models.Tip) error {
	if tip.ID == uuid.Nil {
		tip.ID = uuid.New()
	}
	return r.DB.Create(tip).Error
}

func (r *tipRepo) GetTipByID(id uuid.UUID) (*models.Tip, error) {
	var tip models.Tip
	if err := r.DB.Where("id = ?", id).First(&tip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("tip not found")
		}
		return nil, err
	}
	return &tip, nil
}

func (r *tipRepo) GetTipsByLostCar(lostCarID uuid.UUID) ([]models.Tip, error) {
	var tips []models.Tip
	err := r.DB.Where("lost_car_id = ?", lostCarID).Order("created_at ASC").Find(&tips).Error
	if err != nil {
		return nil, err
	}
	return tips, nil
}

func (r *tipRepo) UpdateTipStatus(id uuid.UUID, status string) error {
	result := r.DB.Model(&models.Tip{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("tip not found")
	}
	return nil
}

// GetPendingTips returns every pending tip joined with the report it belongs
// to, for the admin review dashboard.
func (r *tipRepo) GetPendingTips() ([]models.PendingTipView, error) {
	var views []models.PendingTipView
	err := r.DB.Table("tips").
		Select("tips.*, lost_cars.license_plate AS vehicle_license, lost_cars.reward AS vehicle_reward").
		Joins("JOIN lost_cars ON lost_cars.id = tips.lost_car_id").
		Where("tips.status = ?", models.TipPending).
		Order("tips.created_at ASC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
