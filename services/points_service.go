package services

import (
	"github.com/google/uuid"
	"github.com/teerapatch/rodhai/config"
	"github.com/teerapatch/rodhai/db"
	"github.com/teerapatch/rodhai/models"
)

// PointsService owns the point ledger: fixed awards for tips, balances, the
// leaderboard and the baht conversion rate.
type PointsService interface {
	AwardTipPoints(userID uint, tipID uuid.UUID) error
	Balance(userID uint) (int, error)
	Leaderboard() ([]models.LeaderboardEntry, error)
	ConversionRate() (int, error)
}

type pointsService struct {
	Config     *config.Config
	pointsRepo db.PointsRepository
}

func NewPointsService(pointsRepo db.PointsRepository, conf *config.Config) PointsService {
	return &pointsService{
		Config:     conf,
		pointsRepo: pointsRepo,
	}
}

// AwardTipPoints appends the fixed tip award to the ledger. The award is
// paid when the tip is submitted; review outcome never reverses it.
func (p *pointsService) AwardTipPoints(userID uint, tipID uuid.UUID) error {
	entry := &models.PointEntry{
		UserID: userID,
		TipID:  tipID,
		Points: models.TipAwardPoints,
		Reason: "tip_submitted",
	}
	return p.pointsRepo.SavePointEntry(entry)
}

func (p *pointsService) Balance(userID uint) (int, error) {
	return p.pointsRepo.SumPointsByUser(userID)
}

func (p *pointsService) Leaderboard() ([]models.LeaderboardEntry, error) {
	return p.pointsRepo.Leaderboard()
}

func (p *pointsService) ConversionRate() (int, error) {
	return p.pointsRepo.GetConversionRate()
}
