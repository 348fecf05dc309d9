package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/teerapatch/rodhai/errors"
	"github.com/teerapatch/rodhai/models"
	"github.com/teerapatch/rodhai/server/response"
)

func (s *Server) handleGetPlans() gin.HandlerFunc {
	return func(c *gin.Context) {
		plans, err := s.PlanService.ListPlans()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "", http.StatusOK, plans, nil)
	}
}

func (s *Server) handleSelectPlan() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")

		var request models.SelectPlanRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		userPlan, err := s.PlanService.SelectPlan(userID, &request)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "plan selected", http.StatusCreated, userPlan, nil)
	}
}
