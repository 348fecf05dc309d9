package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	errs "github.com/teerapatch/rodhai/errors"
	"github.com/teerapatch/rodhai/models"
	"github.com/teerapatch/rodhai/server/response"
)

// handleSubmitTip records a sighting against a report. The fixed point
// award is paid inside the service.
func (s *Server) handleSubmitTip() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")

		lostCarID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}

		var request models.TipRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		tip, svcErr := s.TipService.SubmitTip(userID, lostCarID, &request)
		if svcErr != nil {
			response.HandleErrors(c, svcErr)
			return
		}

		s.notify("Thanks for the tip! (+10 points)", "Your information has been sent for review.", models.SeverityInfo)
		response.JSON(c, "tip submitted", http.StatusCreated, tip, nil)
	}
}

func (s *Server) handleListTipsForReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		lostCarID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}

		tips, err := s.TipService.ListTipsForCar(lostCarID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "", http.StatusOK, tips, nil)
	}
}

// handleListPendingTips is the admin review queue: every pending tip joined
// with the report it belongs to.
func (s *Server) handleListPendingTips() gin.HandlerFunc {
	return func(c *gin.Context) {
		tips, err := s.TipService.ListPendingTips()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "", http.StatusOK, tips, nil)
	}
}

func (s *Server) handleApproveTip() gin.HandlerFunc {
	return func(c *gin.Context) {
		tipID, err := uuid.Parse(c.Param("tipID"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid tip id", http.StatusBadRequest))
			return
		}

		if err := s.TipService.ApproveTip(tipID); err != nil {
			response.HandleErrors(c, err)
			return
		}
		s.notify("Tip status updated", "", models.SeveritySuccess)
		response.JSON(c, "tip approved", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleRejectTip() gin.HandlerFunc {
	return func(c *gin.Context) {
		tipID, err := uuid.Parse(c.Param("tipID"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid tip id", http.StatusBadRequest))
			return
		}

		if err := s.TipService.RejectTip(tipID); err != nil {
			response.HandleErrors(c, err)
			return
		}
		s.notify("Tip status updated", "", models.SeveritySuccess)
		response.JSON(c, "tip rejected", http.StatusOK, nil, nil)
	}
}
