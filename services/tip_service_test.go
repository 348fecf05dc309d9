package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teerapatch/rodhai/config"
	"github.com/teerapatch/rodhai/db"
	apiError "github.com/teerapatch/rodhai/errors"
	"github.com/teerapatch/rodhai/models"
	"gorm.io/gorm"
)

type fakeTipRepo struct {
	tips    []*models.Tip
	pending []models.PendingTipView
	updated map[uuid.UUID]string
}

func (f *fakeTipRepo) CreateTip(tip *models.Tip) error {
	if tip.ID == uuid.Nil {
		tip.ID = uuid.New()
	}
	f.tips = append(f.tips, tip)
	return nil
}

func (f *fakeTipRepo) GetTipByID(id uuid.UUID) (*models.Tip, error) {
	for _, tip := range f.tips {
		if tip.ID == id {
			return tip, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTipRepo) GetTipsByLostCar(lostCarID uuid.UUID) ([]models.Tip, error) {
	var out []models.Tip
	for _, tip := range f.tips {
		if tip.LostCarID == lostCarID {
			out = append(out, *tip)
		}
	}
	return out, nil
}

func (f *fakeTipRepo) UpdateTipStatus(id uuid.UUID, status string) error {
	if f.updated == nil {
		f.updated = make(map[uuid.UUID]string)
	}
	f.updated[id] = status
	return nil
}

func (f *fakeTipRepo) GetPendingTips() ([]models.PendingTipView, error) {
	return f.pending, nil
}

type fakeLostCarRepo struct {
	cars map[uuid.UUID]*models.LostCar
}

func (f *fakeLostCarRepo) CreateLostCar(car *models.LostCar) error {
	if car.ID == uuid.Nil {
		car.ID = uuid.New()
	}
	f.cars[car.ID] = car
	return nil
}

func (f *fakeLostCarRepo) GetLostCarByID(id uuid.UUID) (*models.LostCar, error) {
	car, ok := f.cars[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return car, nil
}

func (f *fakeLostCarRepo) UpdateLostCar(car *models.LostCar) error {
	f.cars[car.ID] = car
	return nil
}

func (f *fakeLostCarRepo) UpdateStatus(id uuid.UUID, status string) error {
	car, ok := f.cars[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	car.Status = status
	return nil
}

func (f *fakeLostCarRepo) GetLostCarsByOwner(ownerID uint) ([]models.LostCar, error) {
	var out []models.LostCar
	for _, car := range f.cars {
		if car.OwnerID == ownerID {
			out = append(out, *car)
		}
	}
	return out, nil
}

func (f *fakeLostCarRepo) ReplaceCarImages(carID uuid.UUID, urls []string) error {
	return nil
}

func (f *fakeLostCarRepo) Search(filter db.SearchFilter) ([]models.LostCar, int64, error) {
	return nil, 0, nil
}

type fakePointsService struct {
	awards []uuid.UUID
	users  []uint
	err    error
}

func (f *fakePointsService) AwardTipPoints(userID uint, tipID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.users = append(f.users, userID)
	f.awards = append(f.awards, tipID)
	return nil
}

func (f *fakePointsService) Balance(userID uint) (int, error) {
	return len(f.awards) * models.TipAwardPoints, nil
}

func (f *fakePointsService) Leaderboard() ([]models.LeaderboardEntry, error) {
	return nil, nil
}

func (f *fakePointsService) ConversionRate() (int, error) {
	return models.DefaultConversionRate, nil
}

func newTipFixture() (*fakeTipRepo, *fakeLostCarRepo, *fakePointsService, TipService, uuid.UUID) {
	tipRepo := &fakeTipRepo{}
	carRepo := &fakeLostCarRepo{cars: make(map[uuid.UUID]*models.LostCar)}
	points := &fakePointsService{}

	car := &models.LostCar{LicensePlate: "กข 1234", Status: models.StatusMissing, OwnerID: 1}
	_ = carRepo.CreateLostCar(car)

	svc := NewTipService(tipRepo, carRepo, points, &config.Config{})
	return tipRepo, carRepo, points, svc, car.ID
}

func TestSubmitTipCreatesPendingAndPaysAward(t *testing.T) {
	tipRepo, _, points, svc, carID := newTipFixture()

	tip, err := svc.SubmitTip(7, carID, &models.TipRequest{Message: "Saw it at Lat Phrao", Location: "Lat Phrao"})
	require.NoError(t, err)

	require.Len(t, tipRepo.tips, 1)
	assert.Equal(t, models.TipPending, tip.Status)
	assert.Equal(t, uint(7), tip.TipperID)
	assert.Equal(t, carID, tip.LostCarID)
	assert.Equal(t, "Saw it at Lat Phrao", tip.Message)

	require.Len(t, points.awards, 1)
	assert.Equal(t, tip.ID, points.awards[0])
	assert.Equal(t, []uint{7}, points.users)
}

func TestSubmitTipUnknownReport(t *testing.T) {
	tipRepo, _, points, svc, _ := newTipFixture()

	_, err := svc.SubmitTip(7, uuid.New(), &models.TipRequest{Message: "anything"})
	require.Error(t, err)

	var apiErr *apiError.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	assert.Empty(t, tipRepo.tips)
	assert.Empty(t, points.awards)
}

func TestSubmitTipSurvivesAwardFailure(t *testing.T) {
	tipRepo, _, points, svc, carID := newTipFixture()
	points.err = errors.New("ledger unavailable")

	tip, err := svc.SubmitTip(7, carID, &models.TipRequest{Message: "spotted downtown"})
	require.NoError(t, err)
	require.NotNil(t, tip)

	// The tip stands even when the award could not be written.
	require.Len(t, tipRepo.tips, 1)
	assert.Empty(t, points.awards)
}

func TestRepeatTipsFromSameUserAllowed(t *testing.T) {
	tipRepo, _, points, svc, carID := newTipFixture()

	_, err := svc.SubmitTip(7, carID, &models.TipRequest{Message: "first sighting"})
	require.NoError(t, err)
	_, err = svc.SubmitTip(7, carID, &models.TipRequest{Message: "second sighting"})
	require.NoError(t, err)

	assert.Len(t, tipRepo.tips, 2)
	assert.Len(t, points.awards, 2)
}

func TestReviewMovesSingleTip(t *testing.T) {
	tipRepo, _, _, svc, carID := newTipFixture()

	first, err := svc.SubmitTip(7, carID, &models.TipRequest{Message: "first"})
	require.NoError(t, err)
	second, err := svc.SubmitTip(8, carID, &models.TipRequest{Message: "second"})
	require.NoError(t, err)

	require.NoError(t, svc.ApproveTip(first.ID))
	require.NoError(t, svc.RejectTip(second.ID))

	assert.Equal(t, models.TipApproved, tipRepo.updated[first.ID])
	assert.Equal(t, models.TipRejected, tipRepo.updated[second.ID])
}
