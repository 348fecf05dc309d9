package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/teerapatch/rodhai/config"
	"github.com/teerapatch/rodhai/db"
	apiError "github.com/teerapatch/rodhai/errors"
	"github.com/teerapatch/rodhai/models"
	"gorm.io/gorm"
)

// TipService handles tip submission and the admin review queue.
type TipService interface {
	SubmitTip(userID uint, lostCarID uuid.UUID, request *models.TipRequest) (*models.Tip, error)
	ListTipsForCar(lostCarID uuid.UUID) ([]models.Tip, error)
	ListPendingTips() ([]models.PendingTipView, error)
	ApproveTip(tipID uuid.UUID) error
	RejectTip(tipID uuid.UUID) error
}

type tipService struct {
	Config        *config.Config
	tipRepo       db.TipRepository
	lostCarRepo   db.LostCarRepository
	pointsService PointsService
}

func NewTipService(tipRepo db.TipRepository, lostCarRepo db.LostCarRepository, pointsService PointsService, conf *config.Config) TipService {
	return &tipService{
		Config:        conf,
		tipRepo:       tipRepo,
		lostCarRepo:   lostCarRepo,
		pointsService: pointsService,
	}
}

// SubmitTip records a pending tip against an existing report and pays the
// submitter the fixed award. A failed award is logged and the tip stands;
// the ledger can be reconciled later, the tip must not be lost.
// Repeat tips from the same user on the same report are allowed.
func (t *tipService) SubmitTip(userID uint, lostCarID uuid.UUID, request *models.TipRequest) (*models.Tip, error) {
	if err := models.ValidateWhiteSpaces(request); err != nil {
		return nil, err
	}

	if _, err := t.lostCarRepo.GetLostCarByID(lostCarID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("report not found", http.StatusNotFound)
		}
		log.Printf("error fetching report %s: %v", lostCarID, err)
		return nil, apiError.ErrInternalServerError
	}

	tip := &models.Tip{
		LostCarID: lostCarID,
		TipperID:  userID,
		Message:   request.Message,
		Location:  request.Location,
		ImageURL:  request.ImageURL,
		Status:    models.TipPending,
	}
	if err := t.tipRepo.CreateTip(tip); err != nil {
		log.Printf("error creating tip: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if err := t.pointsService.AwardTipPoints(userID, tip.ID); err != nil {
		log.Printf("error awarding tip points to user %d: %v", userID, err)
	}

	return tip, nil
}

func (t *tipService) ListTipsForCar(lostCarID uuid.UUID) ([]models.Tip, error) {
	return t.tipRepo.GetTipsByLostCar(lostCarID)
}

func (t *tipService) ListPendingTips() ([]models.PendingTipView, error) {
	return t.tipRepo.GetPendingTips()
}

// ApproveTip moves one tip to approved. Other tips on the same report are
// untouched.
func (t *tipService) ApproveTip(tipID uuid.UUID) error {
	return t.tipRepo.UpdateTipStatus(tipID, models.TipApproved)
}

func (t *tipService) RejectTip(tipID uuid.UUID) error {
	return t.tipRepo.UpdateTipStatus(tipID, models.TipRejected)
}
