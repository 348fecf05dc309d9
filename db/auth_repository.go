package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/teerapatch/rodhai/models"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	IsEmailExist(email string) error
	UpdateUser(user *models.User) error
	SetOTP(userID uint, code string, expiresAt time.Time) error
	ClearOTP(userID uint) error
	FindRoleByID(id uuid.UUID) (*models.Role, error)
	FindRoleByName(name string) (*models.Role, error)
	AddToBlacklist(token string) error
	IsTokenInBlacklist(token string) bool
	GetAllUsers() ([]models.User, error)
	FindProfileByUserID(userID uint) (*models.Profile, error)
	UpsertProfile(profile *models.Profile) error
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	err := a.DB.Create(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := a.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := a.DB.Preload("Role").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return fmt.Errorf("email already in use")
	}
	return nil
}

func (a *authRepo) UpdateUser(user *models.User) error {
	return a.DB.Save(user).Error
}

func (a *authRepo) SetOTP(userID uint, code string, expiresAt time.Time) error {
	return a.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"otp_code": code, "otp_expires_at": expiresAt}).Error
}

func (a *authRepo) ClearOTP(userID uint) error {
	return a.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"otp_code": "", "otp_expires_at": time.Time{}}).Error
}

func (a *authRepo) FindRoleByID(id uuid.UUID) (*models.Role, error) {
	var role models.Role
	if err := a.DB.Where("id = ?", id).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (a *authRepo) FindRoleByName(name string) (*models.Role, error) {
	var role models.Role
	if err := a.DB.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (a *authRepo) AddToBlacklist(token string) error {
	return a.DB.Create(&models.Blacklist{Token: token}).Error
}

func (a *authRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	if err := a.DB.Model(&models.Blacklist{}).Where("token = ?", token).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

func (a *authRepo) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := a.DB.Preload("Role").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (a *authRepo) FindProfileByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := a.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (a *authRepo) UpsertProfile(profile *models.Profile) error {
	var existing models.Profile
	err := a.DB.Where("user_id = ?", profile.UserID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.DB.Create(profile).Error
		}
		return err
	}
	existing.DisplayName = profile.DisplayName
	existing.Phone = profile.Phone
	existing.Bio = profile.Bio
	if profile.AvatarURL != "" {
		existing.AvatarURL = profile.AvatarURL
	}
	return a.DB.Save(&existing).Error
}
