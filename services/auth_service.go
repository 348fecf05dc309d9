package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/teerapatch/rodhai/config"
	"github.com/teerapatch/rodhai/db"
	apiError "github.com/teerapatch/rodhai/errors"
	"github.com/teerapatch/rodhai/models"
	"github.com/teerapatch/rodhai/services/jwt"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const otpValidity = 10 * time.Minute

// AuthService interface
type AuthService interface {
	SignupUser(user *models.User) (*models.User, error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	// LoginWithProvider dispatches on the request's provider. A non-empty
	// redirect URL means the caller must send the client to an external
	// OAuth consent page instead of returning a session.
	LoginWithProvider(request *models.ProviderLoginRequest) (*models.LoginResponse, string, *apiError.Error)
	RequestOTP(email string) *apiError.Error
	VerifyOTP(email, code string) (*models.LoginResponse, *apiError.Error)
	SocialLogin(email, fullname, avatarURL string) (*models.LoginResponse, *apiError.Error)
	GoogleAuthURL() (string, error)
	GoogleExchange(code string) (*oauth2.Token, error)
	VerifyOAuthState(state string) error
	GetUserProfile(userID uint) (*models.UserResponse, error)
	EditUserProfile(userID uint, details *models.EditProfileRequest) error
	Logout(accessToken string) error
	GetAllUsers() ([]models.User, error)
	GetRoleByName(name string) (*models.Role, error)
}

// authService struct
type authService struct {
	Config     *config.Config
	authRepo   db.AuthRepository
	pointsRepo db.PointsRepository
	mail       Mailer
}

// NewAuthService instantiate an authService
func NewAuthService(authRepo db.AuthRepository, pointsRepo db.PointsRepository, mail Mailer, conf *config.Config) AuthService {
	return &authService{
		Config:     conf,
		authRepo:   authRepo,
		pointsRepo: pointsRepo,
		mail:       mail,
	}
}

func (a *authService) SignupUser(user *models.User) (*models.User, error) {
	if user == nil {
		log.Println("SignupUser error: user is nil")
		return nil, errors.New("user is nil")
	}

	if err := a.authRepo.IsEmailExist(user.Email); err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	if err := models.ValidatePassword(user.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	user.HashedPassword = string(hashedPassword)
	user.Password = ""

	role, err := a.authRepo.FindRoleByName(models.RoleUser)
	if err != nil {
		log.Printf("SignupUser error fetching default role: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	user.RoleID = role.ID

	user, err = a.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	createdUser, err := a.authRepo.FindUserByEmail(user.Email)
	if err != nil {
		log.Printf("SignupUser error fetching created user: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return createdUser, nil
}

// LoginUser logs in a user and returns the login response
func (a *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := a.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid email or password", http.StatusUnprocessableEntity)
		}
		log.Printf("Error finding user by email: %v", err)
		return nil, apiError.New("unable to find user", http.StatusInternalServerError)
	}

	if err := foundUser.VerifyPassword(loginRequest.Password); err != nil {
		log.Printf("Invalid password for user %s", foundUser.Email)
		return nil, apiError.ErrInvalidPassword
	}

	return a.buildLoginResponse(foundUser)
}

// LoginWithProvider routes one login request to the matching flow. Unknown
// providers get a Google consent URL back so the client can redirect.
func (a *authService) LoginWithProvider(request *models.ProviderLoginRequest) (*models.LoginResponse, string, *apiError.Error) {
	switch request.Provider {
	case "password":
		resp, err := a.LoginUser(&models.LoginRequest{Email: request.Email, Password: request.Password})
		return resp, "", err
	case "signup":
		user := &models.User{
			Fullname: request.Fullname,
			Username: request.Username,
			Email:    request.Email,
			Password: request.Password,
		}
		created, err := a.SignupUser(user)
		if err != nil {
			var apiErr *apiError.Error
			if errors.As(err, &apiErr) {
				return nil, "", apiErr
			}
			return nil, "", apiError.New(err.Error(), http.StatusBadRequest)
		}
		resp, apiErr := a.buildLoginResponse(created)
		return resp, "", apiErr
	case "otp":
		resp, err := a.VerifyOTP(request.Email, request.OTP)
		return resp, "", err
	case "line_oidc":
		resp, err := a.lineLogin(request.IDToken)
		return resp, "", err
	default:
		url, err := a.GoogleAuthURL()
		if err != nil {
			log.Printf("error building oauth url: %v", err)
			return nil, "", apiError.ErrInternalServerError
		}
		return nil, url, nil
	}
}

// RequestOTP generates a short-lived numeric code and mails it. An unknown
// email gets a shell account so the code can land somewhere, matching
// passwordless sign-in semantics.
func (a *authService) RequestOTP(email string) *apiError.Error {
	user, err := a.authRepo.FindUserByEmail(email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("RequestOTP error finding user: %v", err)
			return apiError.ErrInternalServerError
		}
		user, err = a.createShellUser(email)
		if err != nil {
			log.Printf("RequestOTP error creating shell user: %v", err)
			return apiError.ErrInternalServerError
		}
	}

	code, err := generateOTPCode()
	if err != nil {
		log.Printf("RequestOTP error generating code: %v", err)
		return apiError.ErrInternalServerError
	}

	if err := a.authRepo.SetOTP(user.ID, code, time.Now().Add(otpValidity)); err != nil {
		log.Printf("RequestOTP error storing code: %v", err)
		return apiError.ErrInternalServerError
	}

	if err := a.mail.SendOTP(email, code); err != nil {
		log.Printf("RequestOTP error sending mail: %v", err)
		return apiError.New("unable to send code", http.StatusInternalServerError)
	}
	return nil
}

// VerifyOTP checks the emailed code, consumes it, and opens a session.
func (a *authService) VerifyOTP(email, code string) (*models.LoginResponse, *apiError.Error) {
	user, err := a.authRepo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid code", http.StatusUnauthorized)
		}
		log.Printf("VerifyOTP error finding user: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if user.OTPCode == "" || user.OTPCode != code || time.Now().After(user.OTPExpiresAt) {
		return nil, apiError.New("invalid code", http.StatusUnauthorized)
	}

	if err := a.authRepo.ClearOTP(user.ID); err != nil {
		log.Printf("VerifyOTP error clearing code: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if !user.IsEmailActive {
		user.IsEmailActive = true
		if err := a.authRepo.UpdateUser(user); err != nil {
			log.Printf("VerifyOTP error activating user: %v", err)
		}
	}

	return a.buildLoginResponse(user)
}

// SocialLogin finds or creates an account tied to an external identity and
// opens a session. Social accounts carry no usable password.
func (a *authService) SocialLogin(email, fullname, avatarURL string) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := a.authRepo.FindUserByEmail(email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("SocialLogin error finding user: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		foundUser, err = a.createSocialUser(email, fullname, avatarURL)
		if err != nil {
			log.Printf("SocialLogin error creating user: %v", err)
			return nil, apiError.ErrInternalServerError
		}
	}

	return a.buildLoginResponse(foundUser)
}

// lineLogin validates a LINE id_token and opens a session for the identity
// inside it. LINE signs id tokens with the channel secret (HS256).
func (a *authService) lineLogin(idToken string) (*models.LoginResponse, *apiError.Error) {
	if idToken == "" {
		return nil, apiError.New("missing id_token", http.StatusBadRequest)
	}

	token, err := gojwt.Parse(idToken, func(t *gojwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(a.Config.LineChannelSecret), nil
	})
	if err != nil || !token.Valid {
		log.Printf("line id_token rejected: %v", err)
		return nil, apiError.New("invalid id_token", http.StatusUnauthorized)
	}

	claims, ok := token.Claims.(gojwt.MapClaims)
	if !ok {
		return nil, apiError.New("invalid id_token", http.StatusUnauthorized)
	}
	if iss, _ := claims["iss"].(string); iss != "https://access.line.me" {
		return nil, apiError.New("invalid id_token issuer", http.StatusUnauthorized)
	}
	if aud, _ := claims["aud"].(string); a.Config.LineChannelID != "" && aud != a.Config.LineChannelID {
		return nil, apiError.New("id_token audience mismatch", http.StatusUnauthorized)
	}

	email, _ := claims["email"].(string)
	if email == "" {
		// LINE only includes email when the channel has the scope; fall
		// back to a synthetic address keyed on the subject.
		sub, _ := claims["sub"].(string)
		if sub == "" {
			return nil, apiError.New("id_token missing subject", http.StatusUnauthorized)
		}
		email = fmt.Sprintf("%s@line.me", sub)
	}
	name, _ := claims["name"].(string)
	if name == "" {
		name = "LINE User"
	}
	picture, _ := claims["picture"].(string)

	return a.SocialLogin(email, name, picture)
}

func (a *authService) googleOauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     a.Config.GoogleClientID,
		ClientSecret: a.Config.GoogleClientSecret,
		RedirectURL:  a.Config.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// GoogleAuthURL builds the consent URL with a signed state token.
func (a *authService) GoogleAuthURL() (string, error) {
	state, err := jwt.GenerateStateToken(a.Config.JWTSecret)
	if err != nil {
		return "", err
	}
	return a.googleOauthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

func (a *authService) GoogleExchange(code string) (*oauth2.Token, error) {
	return a.googleOauthConfig().Exchange(oauth2.NoContext, code)
}

// VerifyOAuthState rejects callbacks whose state was not minted here.
func (a *authService) VerifyOAuthState(state string) error {
	claims, err := jwt.ValidateAndGetClaims(state, a.Config.JWTSecret)
	if err != nil {
		return err
	}
	if t, _ := claims["type"].(string); t != "oauth_state" {
		return errors.New("unexpected state token type")
	}
	return nil
}

func (a *authService) GetUserProfile(userID uint) (*models.UserResponse, error) {
	user, err := a.authRepo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	points, err := a.pointsRepo.SumPointsByUser(userID)
	if err != nil {
		log.Printf("error summing points for user %d: %v", userID, err)
		points = 0
	}

	return &models.UserResponse{
		ID:        user.ID,
		Fullname:  user.Fullname,
		Username:  user.Username,
		Telephone: user.Telephone,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		Points:    points,
		RoleName:  user.Role.Name,
	}, nil
}

func (a *authService) EditUserProfile(userID uint, details *models.EditProfileRequest) error {
	if err := models.ValidateWhiteSpaces(details); err != nil {
		return err
	}

	profile, err := a.authRepo.FindProfileByUserID(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if profile == nil {
		profile = &models.Profile{UserID: userID}
	}
	profile.DisplayName = details.DisplayName
	profile.Phone = details.Phone
	profile.Bio = details.Bio

	return a.authRepo.UpsertProfile(profile)
}

// Logout revokes the access token. The token stays unusable until it would
// have expired anyway.
func (a *authService) Logout(accessToken string) error {
	return a.authRepo.AddToBlacklist(accessToken)
}

func (a *authService) GetAllUsers() ([]models.User, error) {
	users, err := a.authRepo.GetAllUsers()
	if err != nil {
		return nil, fmt.Errorf("error getting all users: %w", err)
	}
	return users, nil
}

// GetRoleByName retrieves a role from the repository by its name.
func (a *authService) GetRoleByName(name string) (*models.Role, error) {
	role, err := a.authRepo.FindRoleByName(name)
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (a *authService) buildLoginResponse(user *models.User) (*models.LoginResponse, *apiError.Error) {
	roleName := models.RoleUser
	if user.Role.Name != "" {
		roleName = user.Role.Name
	} else if user.RoleID != uuid.Nil {
		role, err := a.authRepo.FindRoleByID(user.RoleID)
		if err != nil {
			log.Printf("Error fetching role for user %s: %v", user.Email, err)
			return nil, apiError.New("unable to fetch role", http.StatusInternalServerError)
		}
		roleName = role.Name
	}

	accessToken, refreshToken, err := jwt.GenerateTokenPair(user.Email, a.Config.JWTSecret, user.AdminStatus, user.ID, roleName)
	if err != nil {
		log.Printf("Error generating token pair for user %s: %v", user.Email, err)
		return nil, apiError.ErrInternalServerError
	}

	points, err := a.pointsRepo.SumPointsByUser(user.ID)
	if err != nil {
		log.Printf("error summing points for user %d: %v", user.ID, err)
		points = 0
	}

	return &models.LoginResponse{
		UserResponse: models.UserResponse{
			ID:        user.ID,
			Fullname:  user.Fullname,
			Username:  user.Username,
			Telephone: user.Telephone,
			Email:     user.Email,
			AvatarURL: user.AvatarURL,
			Points:    points,
			RoleName:  roleName,
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (a *authService) createShellUser(email string) (*models.User, error) {
	username := strings.Split(email, "@")[0]
	if len(username) < 2 {
		username = username + "user"
	}

	role, err := a.authRepo.FindRoleByName(models.RoleUser)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Fullname: username,
		Username: username,
		RoleID:   role.ID,
	}
	return a.authRepo.CreateUser(user)
}

func (a *authService) createSocialUser(email, fullname, avatarURL string) (*models.User, error) {
	username := strings.Split(email, "@")[0]
	if len(username) < 2 {
		username = username + "user"
	}
	if fullname == "" {
		fullname = username
	}

	role, err := a.authRepo.FindRoleByName(models.RoleUser)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:         email,
		Fullname:      fullname,
		Username:      username,
		AvatarURL:     avatarURL,
		IsSocial:      true,
		IsEmailActive: true,
		RoleID:        role.ID,
	}
	return a.authRepo.CreateUser(user)
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
