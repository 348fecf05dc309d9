package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	errs "github.com/teerapatch/rodhai/errors"
	"github.com/teerapatch/rodhai/models"
	"github.com/teerapatch/rodhai/server/response"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := decode(c, &user); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if err := models.ValidateWhiteSpaces(&user); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		validate := validator.New()
		if err := validate.Struct(user); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		userResponse, err := s.AuthService.SignupUser(&user)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		response.JSON(c, "Signup successful", http.StatusCreated, userResponse, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}
		userResponse, err := s.AuthService.LoginUser(&loginRequest)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, userResponse, nil)
	}
}

// handleProviderLogin is the single entry point the client calls with a
// provider name. Password, signup, otp and line_oidc resolve to a session;
// any other provider answers with a redirect URL for the consent page.
func (s *Server) handleProviderLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.ProviderLoginRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		loginResponse, redirectURL, err := s.AuthService.LoginWithProvider(&request)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		if redirectURL != "" {
			response.JSON(c, "redirect to provider", http.StatusOK, gin.H{"redirect_url": redirectURL}, nil)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, loginResponse, nil)
	}
}

func (s *Server) handleRequestOTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.OTPRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}
		if err := s.AuthService.RequestOTP(request.Email); err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "code sent, check your email", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleVerifyOTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.OTPVerifyRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}
		loginResponse, err := s.AuthService.VerifyOTP(request.Email, request.OTP)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, loginResponse, nil)
	}
}

func (s *Server) HandleGoogleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		url, err := s.AuthService.GoogleAuthURL()
		if err != nil {
			log.Printf("error building google auth url: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, url)
	}
}

type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *Server) HandleGoogleCallback() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := c.Query("state")
		if err := s.AuthService.VerifyOAuthState(state); err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("invalid oauth state", http.StatusUnauthorized))
			return
		}

		code := c.Query("code")
		token, err := s.AuthService.GoogleExchange(code)
		if err != nil {
			log.Printf("google code exchange failed: %v", err)
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("code exchange failed", http.StatusUnauthorized))
			return
		}

		resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
		if err != nil {
			log.Printf("error fetching google userinfo: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		defer resp.Body.Close()

		var info googleUserInfo
		if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
			log.Printf("error decoding google userinfo: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		if info.Email == "" {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("google account has no email", http.StatusUnauthorized))
			return
		}

		loginResponse, apiErr := s.AuthService.SocialLogin(info.Email, info.Name, info.Picture)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, loginResponse, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := c.GetString("access_token")
		if err := s.AuthService.Logout(accessToken); err != nil {
			log.Printf("error blacklisting token: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")
		profile, err := s.AuthService.GetUserProfile(userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, profile, nil)
	}
}

func (s *Server) handleEditUserProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")

		var request models.EditProfileRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		if err := s.AuthService.EditUserProfile(userID, &request); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "profile updated", http.StatusOK, nil, nil)
	}
}

// handleUploadAvatar stores a new avatar and saves its URL on the account.
func (s *Server) handleUploadAvatar() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")

		file, fileHeader, err := c.Request.FormFile("avatar")
		if err != nil {
			response.JSON(c, "missing or invalid file", http.StatusBadRequest, nil, err)
			return
		}

		avatarURL, err := s.MediaService.UploadAvatar(file, fileHeader)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		user, err := s.AuthRepository.FindUserByID(userID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		user.AvatarURL = avatarURL
		if err := s.AuthRepository.UpdateUser(user); err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		response.JSON(c, "avatar updated", http.StatusOK, gin.H{"avatar_url": avatarURL}, nil)
	}
}

func (s *Server) handleGetAllUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := s.AuthService.GetAllUsers()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "", http.StatusOK, users, nil)
	}
}
