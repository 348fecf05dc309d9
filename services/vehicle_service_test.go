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
)

func newCarFixture() (*fakeLostCarRepo, LostCarService) {
	repo := &fakeLostCarRepo{cars: make(map[uuid.UUID]*models.LostCar)}
	return repo, NewLostCarService(repo, &config.Config{})
}

func TestCreateReportForcesMissingStatus(t *testing.T) {
	_, svc := newCarFixture()

	car, err := svc.CreateReport(3, "Somchai Jaidee", &models.CreateReportRequest{
		LicensePlate: "กข 1234",
		Brand:        "Toyota",
		Model:        "Vios",
		Color:        "black",
		Reward:       500,
	}, nil, "")
	require.NoError(t, err)

	assert.Equal(t, models.StatusMissing, car.Status)
	assert.Equal(t, uint(3), car.OwnerID)
	assert.Equal(t, "Somchai Jaidee", car.OwnerName)
	assert.Equal(t, 500, car.Reward)
}

func TestCreateReportAnonymousHidesOwnerName(t *testing.T) {
	_, svc := newCarFixture()

	car, err := svc.CreateReport(3, "Somchai Jaidee", &models.CreateReportRequest{
		LicensePlate: "กข 1234",
		Anonymous:    true,
	}, nil, "")
	require.NoError(t, err)

	assert.True(t, car.IsAnonymous)
	assert.Empty(t, car.OwnerName)
	// Owner id is kept for authorization even on anonymous reports.
	assert.Equal(t, uint(3), car.OwnerID)
}

func TestCreateReportRejectsBadLostDate(t *testing.T) {
	_, svc := newCarFixture()

	_, err := svc.CreateReport(3, "Somchai", &models.CreateReportRequest{
		LicensePlate: "กข 1234",
		LostDate:     "19/06/2025",
	}, nil, "")
	require.Error(t, err)

	var apiErr *apiError.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestUpdateReportEnforcesOwnership(t *testing.T) {
	repo, svc := newCarFixture()

	car := &models.LostCar{LicensePlate: "กข 1234", OwnerID: 3, Status: models.StatusMissing}
	require.NoError(t, repo.CreateLostCar(car))

	_, err := svc.UpdateReport(99, car.ID, &models.CreateReportRequest{LicensePlate: "new"})
	var apiErr *apiError.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	updated, err := svc.UpdateReport(3, car.ID, &models.CreateReportRequest{LicensePlate: "2ขค 777"})
	require.NoError(t, err)
	assert.Equal(t, "2ขค 777", updated.LicensePlate)
}

func TestUpdateStatusValidation(t *testing.T) {
	repo, svc := newCarFixture()

	car := &models.LostCar{LicensePlate: "กข 1234", OwnerID: 3, Status: models.StatusMissing}
	require.NoError(t, repo.CreateLostCar(car))

	err := svc.UpdateStatus(3, false, car.ID, "vanished")
	var apiErr *apiError.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	// A stranger cannot move the status, an admin can.
	err = svc.UpdateStatus(99, false, car.ID, models.StatusFound)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	require.NoError(t, svc.UpdateStatus(99, true, car.ID, models.StatusFound))
	assert.Equal(t, models.StatusFound, repo.cars[car.ID].Status)
}

type pagedSearchRepo struct {
	fakeLostCarRepo
	total int64
}

func (p *pagedSearchRepo) Search(filter db.SearchFilter) ([]models.LostCar, int64, error) {
	return []models.LostCar{{LicensePlate: "กข 1234"}}, p.total, nil
}

func TestSearchComputesTotalPages(t *testing.T) {
	repo := &pagedSearchRepo{total: 41}
	svc := NewLostCarService(repo, &config.Config{})

	result, err := svc.Search(db.SearchFilter{Term: "vios", Page: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(41), result.TotalCount)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 2, result.Page)
	require.Len(t, result.Data, 1)
}
