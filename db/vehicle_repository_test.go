package db

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSearchClauseCoversAllColumns(t *testing.T) {
	clause, args := SearchClause("vios")

	parts := strings.Split(clause, " OR ")
	require.Len(t, parts, 6)
	assert.Contains(t, parts, "license_plate ILIKE ?")
	assert.Contains(t, parts, "brand ILIKE ?")
	assert.Contains(t, parts, "model ILIKE ?")
	assert.Contains(t, parts, "color ILIKE ?")
	assert.Contains(t, parts, "owner_name ILIKE ?")
	assert.Contains(t, parts, "last_seen_location ILIKE ?")

	require.Len(t, args, 6)
	for _, arg := range args {
		assert.Equal(t, "%vios%", arg)
	}
}

func TestSearchClauseWrapsTermInWildcards(t *testing.T) {
	_, args := SearchClause("กข 1234")
	require.NotEmpty(t, args)
	assert.Equal(t, "%กข 1234%", args[0])
}

func newMockLostCarRepo(t *testing.T) (LostCarRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return &lostCarRepo{DB: gormDB}, mock
}

func TestGetLostCarByIDLoadsTipsInSubmissionOrder(t *testing.T) {
	repo, mock := newMockLostCarRepo(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM "lost_cars"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))
	mock.ExpectQuery(`SELECT .+ FROM "car_images"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "lost_car_id"}))
	mock.ExpectQuery(`SELECT .+ FROM "tips" .+ ORDER BY created_at ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "lost_car_id"}))

	car, err := repo.GetLostCarByID(id)
	require.NoError(t, err)
	assert.Equal(t, id, car.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLostCarsByOwnerLoadsTipsInSubmissionOrder(t *testing.T) {
	repo, mock := newMockLostCarRepo(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM "lost_cars" WHERE owner_id = .+ ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id"}).AddRow(id.String(), 7))
	mock.ExpectQuery(`SELECT .+ FROM "car_images"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "lost_car_id"}))
	mock.ExpectQuery(`SELECT .+ FROM "tips" .+ ORDER BY created_at ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "lost_car_id"}))

	cars, err := repo.GetLostCarsByOwner(7)
	require.NoError(t, err)
	require.Len(t, cars, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
