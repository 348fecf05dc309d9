package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teerapatch/rodhai/config"
	apiError "github.com/teerapatch/rodhai/errors"
	"github.com/teerapatch/rodhai/models"
	"gorm.io/gorm"
)

type fakePlanRepo struct {
	plans      []models.Plan
	selections []*models.UserPlan
}

func (f *fakePlanRepo) GetAllPlans() ([]models.Plan, error) {
	return f.plans, nil
}

func (f *fakePlanRepo) GetPlanByID(id uint) (*models.Plan, error) {
	for i := range f.plans {
		if f.plans[i].ID == id {
			return &f.plans[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePlanRepo) SavePlanSelection(userPlan *models.UserPlan) error {
	f.selections = append(f.selections, userPlan)
	return nil
}

func newPlanFixture() (*fakePlanRepo, PlanService) {
	repo := &fakePlanRepo{
		plans: []models.Plan{
			{Model: models.Model{ID: 1}, Name: "Supporter", Price: 99, PriceType: models.PriceTypeFixed},
			{Model: models.Model{ID: 2}, Name: "Donation", Price: 0, PriceType: models.PriceTypeCustom},
		},
	}
	return repo, NewPlanService(repo, &config.Config{})
}

func TestSelectFixedPlanIgnoresCustomPrice(t *testing.T) {
	repo, svc := newPlanFixture()

	userPlan, err := svc.SelectPlan(5, &models.SelectPlanRequest{PlanID: 1, CustomPrice: 7})
	require.NoError(t, err)

	assert.Equal(t, 99, userPlan.Price)
	assert.Equal(t, uint(5), userPlan.UserID)
	assert.False(t, userPlan.SelectedAt.IsZero())
	require.Len(t, repo.selections, 1)
}

func TestSelectCustomPlanRequiresPositiveAmount(t *testing.T) {
	_, svc := newPlanFixture()

	_, err := svc.SelectPlan(5, &models.SelectPlanRequest{PlanID: 2, CustomPrice: 0})
	var apiErr *apiError.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	userPlan, err := svc.SelectPlan(5, &models.SelectPlanRequest{PlanID: 2, CustomPrice: 300})
	require.NoError(t, err)
	assert.Equal(t, 300, userPlan.Price)
}

func TestSelectUnknownPlan(t *testing.T) {
	_, svc := newPlanFixture()

	_, err := svc.SelectPlan(5, &models.SelectPlanRequest{PlanID: 42})
	var apiErr *apiError.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}
