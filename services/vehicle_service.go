package services

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/teerapatch/rodhai/config"
	"github.com/teerapatch/rodhai/db"
	apiError "github.com/teerapatch/rodhai/errors"
	"github.com/teerapatch/rodhai/models"
	"gorm.io/gorm"
)

// LostCarService owns the report lifecycle: creation, owner edits, status
// changes and the paginated public search.
type LostCarService interface {
	CreateReport(userID uint, ownerName string, request *models.CreateReportRequest, imageURLs []string, policeReportURL string) (*models.LostCar, error)
	UpdateReport(userID uint, id uuid.UUID, request *models.CreateReportRequest) (*models.LostCar, error)
	UpdateStatus(userID uint, isAdmin bool, id uuid.UUID, status string) error
	GetReport(id uuid.UUID) (*models.LostCar, error)
	GetReportsByOwner(userID uint) ([]models.LostCar, error)
	Search(filter db.SearchFilter) (*models.SearchResponse, error)
}

type lostCarService struct {
	Config      *config.Config
	lostCarRepo db.LostCarRepository
}

func NewLostCarService(lostCarRepo db.LostCarRepository, conf *config.Config) LostCarService {
	return &lostCarService{
		Config:      conf,
		lostCarRepo: lostCarRepo,
	}
}

// CreateReport stores a new report. Status always starts at missing no
// matter what the client sends. An anonymous report keeps the owner id for
// authorization but drops the display name.
func (l *lostCarService) CreateReport(userID uint, ownerName string, request *models.CreateReportRequest, imageURLs []string, policeReportURL string) (*models.LostCar, error) {
	if err := models.ValidateWhiteSpaces(request); err != nil {
		return nil, err
	}

	car := &models.LostCar{
		LicensePlate:     request.LicensePlate,
		Brand:            request.Brand,
		Model:            request.Model,
		Color:            request.Color,
		LastSeenLocation: request.LastSeenLocation,
		Subdistrict:      request.Subdistrict,
		District:         request.District,
		Province:         request.Province,
		Contact:          request.Contact,
		Reward:           request.Reward,
		PoliceReportURL:  policeReportURL,
		IsAnonymous:      request.Anonymous,
		OwnerID:          userID,
		OwnerName:        ownerName,
		Status:           models.StatusMissing,
	}
	if request.Anonymous {
		car.OwnerName = ""
	}
	if request.LostDate != "" {
		lostDate, err := time.Parse(time.RFC3339, request.LostDate)
		if err != nil {
			return nil, apiError.New("invalid lost_date, want RFC3339", http.StatusBadRequest)
		}
		car.LostDate = &lostDate
	}

	if err := l.lostCarRepo.CreateLostCar(car); err != nil {
		log.Printf("error creating report: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if len(imageURLs) > 0 {
		if err := l.lostCarRepo.ReplaceCarImages(car.ID, imageURLs); err != nil {
			log.Printf("error attaching images to report %s: %v", car.ID, err)
		}
	}

	return l.lostCarRepo.GetLostCarByID(car.ID)
}

// UpdateReport lets the owner revise report details. Ownership is checked
// here, not in the handler, so every entry point enforces it.
func (l *lostCarService) UpdateReport(userID uint, id uuid.UUID, request *models.CreateReportRequest) (*models.LostCar, error) {
	if err := models.ValidateWhiteSpaces(request); err != nil {
		return nil, err
	}

	car, err := l.lostCarRepo.GetLostCarByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("report not found", http.StatusNotFound)
		}
		log.Printf("error fetching report %s: %v", id, err)
		return nil, apiError.ErrInternalServerError
	}
	if car.OwnerID != userID {
		return nil, apiError.New("not your report", http.StatusForbidden)
	}

	car.LicensePlate = request.LicensePlate
	car.Brand = request.Brand
	car.Model = request.Model
	car.Color = request.Color
	car.LastSeenLocation = request.LastSeenLocation
	car.Subdistrict = request.Subdistrict
	car.District = request.District
	car.Province = request.Province
	car.Contact = request.Contact
	car.Reward = request.Reward
	car.IsAnonymous = request.Anonymous
	if request.Anonymous {
		car.OwnerName = ""
	}
	if request.LostDate != "" {
		lostDate, err := time.Parse(time.RFC3339, request.LostDate)
		if err != nil {
			return nil, apiError.New("invalid lost_date, want RFC3339", http.StatusBadRequest)
		}
		car.LostDate = &lostDate
	}

	if err := l.lostCarRepo.UpdateLostCar(car); err != nil {
		log.Printf("error updating report %s: %v", id, err)
		return nil, apiError.ErrInternalServerError
	}
	return car, nil
}

// UpdateStatus moves a report between lifecycle states. The owner or an
// admin may set any known status.
func (l *lostCarService) UpdateStatus(userID uint, isAdmin bool, id uuid.UUID, status string) error {
	if !models.IsKnownStatus(status) {
		return apiError.New("unknown status", http.StatusBadRequest)
	}

	car, err := l.lostCarRepo.GetLostCarByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("report not found", http.StatusNotFound)
		}
		log.Printf("error fetching report %s: %v", id, err)
		return apiError.ErrInternalServerError
	}
	if car.OwnerID != userID && !isAdmin {
		return apiError.New("not your report", http.StatusForbidden)
	}

	return l.lostCarRepo.UpdateStatus(id, status)
}

func (l *lostCarService) GetReport(id uuid.UUID) (*models.LostCar, error) {
	car, err := l.lostCarRepo.GetLostCarByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("report not found", http.StatusNotFound)
		}
		return nil, err
	}
	return car, nil
}

func (l *lostCarService) GetReportsByOwner(userID uint) ([]models.LostCar, error) {
	return l.lostCarRepo.GetLostCarsByOwner(userID)
}

// Search runs the paginated listing query. The page window (Pages) is
// filled in by the HTTP layer.
func (l *lostCarService) Search(filter db.SearchFilter) (*models.SearchResponse, error) {
	cars, total, err := l.lostCarRepo.Search(filter)
	if err != nil {
		log.Printf("error searching reports: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	totalPages := int((total + db.DefaultPageSize - 1) / db.DefaultPageSize)
	page := filter.Page
	if page < 1 {
		page = 1
	}

	return &models.SearchResponse{
		Data:       cars,
		TotalCount: total,
		TotalPages: totalPages,
		Page:       page,
	}, nil
}
