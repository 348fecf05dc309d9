package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/teerapatch/rodhai/errors"
	"github.com/teerapatch/rodhai/fallback"
	"github.com/teerapatch/rodhai/models"
	"github.com/teerapatch/rodhai/server/response"
)

// Demo mode serves the seeded local data path. No Postgres, no JWT: a
// single mock session toggled by the login endpoint, exactly one store.

func (s *Server) handleDemoLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			UserID string `json:"user_id"`
		}
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if request.UserID == "" {
			request.UserID = "mock-user-id"
		}

		if !s.Roster.SignIn(request.UserID) {
			response.JSON(c, "", http.StatusNotFound, nil, errs.New("user not found", http.StatusNotFound))
			return
		}
		response.JSON(c, "login successful", http.StatusOK, s.Roster.CurrentUser(), nil)
	}
}

func (s *Server) handleDemoLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.Roster.Logout()
		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleDemoCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := s.Roster.CurrentUser()
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("no session", http.StatusUnauthorized))
			return
		}
		response.JSON(c, "", http.StatusOK, user, nil)
	}
}

func (s *Server) handleDemoListVehicles() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.JSON(c, "", http.StatusOK, s.Registry.List(), nil)
	}
}

func (s *Server) handleDemoGetVehicle() gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicle, ok := s.Registry.GetByID(c.Param("id"))
		if !ok {
			response.JSON(c, "", http.StatusNotFound, nil, errs.New("vehicle not found", http.StatusNotFound))
			return
		}
		response.JSON(c, "", http.StatusOK, vehicle, nil)
	}
}

func (s *Server) handleDemoAddVehicle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var draft fallback.Vehicle
		if err := decode(c, &draft); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		vehicle, err := s.Registry.Add(draft)
		if err != nil {
			if errors.Is(err, fallback.ErrNotAuthenticated) {
				response.JSON(c, "", http.StatusUnauthorized, nil, errs.New(err.Error(), http.StatusUnauthorized))
				return
			}
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "report submitted", http.StatusCreated, vehicle, nil)
	}
}

func (s *Server) handleDemoAddTip() gin.HandlerFunc {
	return func(c *gin.Context) {
		var draft fallback.Tip
		if err := decode(c, &draft); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if err := s.Registry.AddTip(c.Param("id"), draft); err != nil {
			switch {
			case errors.Is(err, fallback.ErrNotAuthenticated):
				response.JSON(c, "", http.StatusUnauthorized, nil, errs.New(err.Error(), http.StatusUnauthorized))
			case errors.Is(err, fallback.ErrVehicleNotFound):
				response.JSON(c, "", http.StatusNotFound, nil, errs.New(err.Error(), http.StatusNotFound))
			default:
				response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			}
			return
		}
		response.JSON(c, "tip submitted", http.StatusCreated, nil, nil)
	}
}

func (s *Server) handleDemoUpdateTipStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			Status string `json:"status" binding:"required"`
		}
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if request.Status != models.TipPending && request.Status != models.TipApproved && request.Status != models.TipRejected {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("unknown tip status", http.StatusBadRequest))
			return
		}

		user := s.Roster.CurrentUser()
		if user == nil || !user.IsAdmin {
			response.JSON(c, "", http.StatusForbidden, nil, errs.New("admin access required", http.StatusForbidden))
			return
		}

		if err := s.Registry.UpdateTipStatus(c.Param("id"), c.Param("tipID"), request.Status); err != nil {
			switch {
			case errors.Is(err, fallback.ErrVehicleNotFound), errors.Is(err, fallback.ErrTipNotFound):
				response.JSON(c, "", http.StatusNotFound, nil, errs.New(err.Error(), http.StatusNotFound))
			default:
				response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			}
			return
		}
		response.JSON(c, "tip status updated", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleDemoLeaderboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.JSON(c, "", http.StatusOK, s.Roster.Leaderboard(), nil)
	}
}
