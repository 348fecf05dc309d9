package db

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/teerapatch/rodhai/models"
	"gorm.io/gorm"
)

const DefaultPageSize = 20

// SearchFilter carries the listing inputs: free-text term, status filter
// ("all" disables the status constraint) and a 1-based page.
type SearchFilter struct {
	Term   string
	Status string
	Page   int
}

type LostCarRepository interface {
	CreateLostCar(car *models.LostCar) error
	GetLostCarByID(id uuid.UUID) (*models.LostCar, error)
	UpdateLostCar(car *models.LostCar) error
	UpdateStatus(id uuid.UUID, status string) error
	GetLostCarsByOwner(ownerID uint) ([]models.LostCar, error)
	ReplaceCarImages(carID uuid.UUID, urls []string) error
	Search(filter SearchFilter) ([]models.LostCar, int64, error)
}

type lostCarRepo struct {
	DB *gorm.DB
}

func NewLostCarRepo(db *GormDB) LostCarRepository {
	return &lostCarRepo{db.DB}
}

func (r *lostCarRepo) CreateLostCar(car *models.LostCar) error {
	if car.ID == uuid.Nil {
		car.ID = uuid.New()
	}
	return r.DB.Create(car).Error
}

// tipOrder keeps preloaded tips in submission order, matching how the tip
// list is read on its own.
func tipOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

func (r *lostCarRepo) GetLostCarByID(id uuid.UUID) (*models.LostCar, error) {
	var car models.LostCar
	err := r.DB.Preload("Images").Preload("Tips", tipOrder).Where("id = ?", id).First(&car).Error
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *lostCarRepo) UpdateLostCar(car *models.LostCar) error {
	return r.DB.Save(car).Error
}

func (r *lostCarRepo) UpdateStatus(id uuid.UUID, status string) error {
	return r.DB.Model(&models.LostCar{}).Where("id = ?", id).Update("status", status).Error
}

func (r *lostCarRepo) GetLostCarsByOwner(ownerID uint) ([]models.LostCar, error) {
	var cars []models.LostCar
	err := r.DB.Preload("Images").Preload("Tips", tipOrder).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&cars).Error
	if err != nil {
		return nil, err
	}
	return cars, nil
}

// ReplaceCarImages swaps the full image set for a report, mirroring how the
// edit flow resubmits every URL.
func (r *lostCarRepo) ReplaceCarImages(carID uuid.UUID, urls []string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lost_car_id = ?", carID).Delete(&models.CarImage{}).Error; err != nil {
			return err
		}
		for _, url := range urls {
			if err := tx.Create(&models.CarImage{LostCarID: carID, ImageURL: url}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// searchColumns are the fields a free-text term is matched against,
// case-insensitively, with OR semantics.
var searchColumns = []string{
	"license_plate",
	"brand",
	"model",
	"color",
	"owner_name",
	"last_seen_location",
}

// SearchClause builds the ILIKE disjunction for a search term. Split out so
// the query shape is testable without a live database.
func SearchClause(term string) (string, []interface{}) {
	parts := make([]string, 0, len(searchColumns))
	args := make([]interface{}, 0, len(searchColumns))
	pattern := "%" + term + "%"
	for _, col := range searchColumns {
		parts = append(parts, col+" ILIKE ?")
		args = append(args, pattern)
	}
	return strings.Join(parts, " OR "), args
}

// Search returns one page of matching reports plus the exact total count,
// newest first. Page slice is rows [(page-1)*20, page*20-1].
func (r *lostCarRepo) Search(filter SearchFilter) ([]models.LostCar, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * DefaultPageSize

	query := r.DB.Model(&models.LostCar{})

	if term := strings.TrimSpace(filter.Term); term != "" {
		clause, args := SearchClause(term)
		query = query.Where(clause, args...)
	}
	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "counting lost cars")
	}

	var cars []models.LostCar
	err := query.Preload("Images").
		Order("created_at DESC").
		Limit(DefaultPageSize).
		Offset(offset).
		Find(&cars).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "fetching lost cars page")
	}

	return cars, total, nil
}
