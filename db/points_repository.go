package db

import (
	"github.com/pkg/errors"
	"github.com/teerapatch/rodhai/models"
	"gorm.io/gorm"
)

type PointsRepository interface {
	SavePointEntry(entry *models.PointEntry) error
	SumPointsByUser(userID uint) (int, error)
	Leaderboard() ([]models.LeaderboardEntry, error)
	GetConversionRate() (int, error)
}

type pointsRepo struct {
	DB *gorm.DB
}

func NewPointsRepo(db *GormDB) PointsRepository {
	return &pointsRepo{db.DB}
}

func (r *pointsRepo) SavePointEntry(entry *models.PointEntry) error {
	return r.DB.Create(entry).Error
}

func (r *pointsRepo) SumPointsByUser(userID uint) (int, error) {
	var total int
	err := r.DB.Model(&models.PointEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Leaderboard returns every user with their summed points, highest first.
// Users without a ledger entry still appear with zero.
func (r *pointsRepo) Leaderboard() ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := r.DB.Table("users").
		Select("users.id AS user_id, users.fullname, users.avatar_url, COALESCE(SUM(point_entries.points), 0) AS points").
		Joins("LEFT JOIN point_entries ON point_entries.user_id = users.id").
		Group("users.id, users.fullname, users.avatar_url").
		Order("points DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *pointsRepo) GetConversionRate() (int, error) {
	var rate models.PointConversionRate
	err := r.DB.First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DefaultConversionRate, nil
		}
		return 0, err
	}
	return rate.ConversionRate, nil
}
