package db

import (
	"github.com/teerapatch/rodhai/models"
	"gorm.io/gorm"
)

type PlanRepository interface {
	GetAllPlans() ([]models.Plan, error)
	GetPlanByID(id uint) (*models.Plan, error)
	SavePlanSelection(userPlan *models.UserPlan) error
}

type planRepo struct {
	DB *gorm.DB
}

func NewPlanRepo(db *GormDB) PlanRepository {
	return &planRepo{db.DB}
}

func (r *planRepo) GetAllPlans() ([]models.Plan, error) {
	var plans []models.Plan
	if err := r.DB.Order("id").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *planRepo) GetPlanByID(id uint) (*models.Plan, error) {
	var plan models.Plan
	if err := r.DB.Where("id = ?", id).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepo) SavePlanSelection(userPlan *models.UserPlan) error {
	return r.DB.Create(userPlan).Error
}
