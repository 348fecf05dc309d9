package models

import (
	"errors"
	"fmt"
	"time"

	goval "github.com/go-passwd/validator"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

// User represents a registered member of the application.
type User struct {
	Model
	Fullname       string    `json:"fullname" binding:"required,min=2" conform:"trim"`
	Username       string    `json:"username" binding:"required,min=2" conform:"trim"`
	Telephone      string    `json:"telephone" gorm:"default:null"`
	Email          string    `json:"email" gorm:"unique;not null" binding:"required,email" conform:"trim,lower"`
	Password       string    `json:"password,omitempty" gorm:"-" validate:"omitempty,min=6"`
	HashedPassword string    `json:"-"`
	IsEmailActive  bool      `json:"-"`
	IsSocial       bool      `json:"-"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	AdminStatus    bool      `json:"is_admin"`
	OTPCode        string    `json:"-"`
	OTPExpiresAt   time.Time `json:"-"`
	RoleID         uuid.UUID `gorm:"type:uuid" json:"role_id"`
	Role           Role      `gorm:"foreignKey:RoleID" json:"role"`
}

type Role struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `json:"name"`
}

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// Profile holds the public-facing display data a user edits separately from
// the account record.
type Profile struct {
	Model
	UserID      uint   `json:"user_id" gorm:"uniqueIndex"`
	DisplayName string `json:"display_name" conform:"trim"`
	Phone       string `json:"phone" conform:"trim"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
}

// Blacklist stores revoked access tokens so logout invalidates the session.
type Blacklist struct {
	Model
	Token string `json:"token" gorm:"index"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProviderLoginRequest dispatches a login across the supported providers.
// Provider is one of "password", "signup", "otp", "line_oidc"; anything else
// is treated as a generic OAuth provider and answered with a redirect URL.
type ProviderLoginRequest struct {
	Provider    string `json:"provider" binding:"required"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Fullname    string `json:"fullname"`
	Username    string `json:"username"`
	OTP         string `json:"otp"`
	IDToken     string `json:"id_token"`
	AccessToken string `json:"access_token"`
}

type OTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type OTPVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

type UserResponse struct {
	ID        uint   `json:"id"`
	Fullname  string `json:"fullname"`
	Username  string `json:"username"`
	Telephone string `json:"telephone"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Points    int    `json:"points"`
	RoleName  string `json:"role_name"`
}

type LoginResponse struct {
	UserResponse
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type EditProfileRequest struct {
	DisplayName string `json:"display_name" conform:"trim"`
	Phone       string `json:"phone" conform:"trim"`
	Bio         string `json:"bio"`
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(64, errors.New("password cant be more than 64 characters")))
	return passwordValidator.Validate(password)
}

// ValidateWhiteSpaces trims struct string fields tagged with conform.
func ValidateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

// translateError renders validator errors into one message per failed field.
func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []error{err}
	}
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans) + "; ")
		errs = append(errs, translatedErr)
	}
	return errs
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}
