package services

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/teerapatch/rodhai/config"
	"github.com/teerapatch/rodhai/db"
	apiError "github.com/teerapatch/rodhai/errors"
	"github.com/teerapatch/rodhai/models"
	"gorm.io/gorm"
)

// PlanService serves the support tiers and records selections.
type PlanService interface {
	ListPlans() ([]models.Plan, error)
	SelectPlan(userID uint, request *models.SelectPlanRequest) (*models.UserPlan, error)
}

type planService struct {
	Config   *config.Config
	planRepo db.PlanRepository
}

func NewPlanService(planRepo db.PlanRepository, conf *config.Config) PlanService {
	return &planService{
		Config:   conf,
		planRepo: planRepo,
	}
}

func (p *planService) ListPlans() ([]models.Plan, error) {
	return p.planRepo.GetAllPlans()
}

// SelectPlan records a plan choice. Custom-priced plans take the amount from
// the request; fixed plans ignore it and charge the listed price.
func (p *planService) SelectPlan(userID uint, request *models.SelectPlanRequest) (*models.UserPlan, error) {
	plan, err := p.planRepo.GetPlanByID(request.PlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("plan not found", http.StatusNotFound)
		}
		log.Printf("error fetching plan %d: %v", request.PlanID, err)
		return nil, apiError.ErrInternalServerError
	}

	price := plan.Price
	if plan.PriceType == models.PriceTypeCustom {
		if request.CustomPrice <= 0 {
			return nil, apiError.New("custom price must be greater than zero", http.StatusBadRequest)
		}
		price = request.CustomPrice
	}

	userPlan := &models.UserPlan{
		UserID:     userID,
		PlanID:     plan.ID,
		Price:      price,
		SelectedAt: time.Now(),
	}
	if err := p.planRepo.SavePlanSelection(userPlan); err != nil {
		log.Printf("error saving plan selection: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return userPlan, nil
}
