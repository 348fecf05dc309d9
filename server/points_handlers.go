package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/teerapatch/rodhai/errors"
	"github.com/teerapatch/rodhai/server/response"
)

func (s *Server) handleLeaderboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := s.PointsService.Leaderboard()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "", http.StatusOK, entries, nil)
	}
}

func (s *Server) handlePointsBalance() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")
		balance, err := s.PointsService.Balance(userID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"points": balance}, nil)
	}
}

// handleConversionRate serves the baht-per-point rate shown next to point
// balances.
func (s *Server) handleConversionRate() gin.HandlerFunc {
	return func(c *gin.Context) {
		rate, err := s.PointsService.ConversionRate()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"conversion_rate": rate}, nil)
	}
}
