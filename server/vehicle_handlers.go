package server

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/teerapatch/rodhai/db"
	errs "github.com/teerapatch/rodhai/errors"
	"github.com/teerapatch/rodhai/models"
	"github.com/teerapatch/rodhai/server/response"
)

// handleCreateReport accepts the multipart report form: fields plus optional
// car photos and a police report document.
func (s *Server) handleCreateReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")
		ownerName := c.GetString("fullName")

		var request models.CreateReportRequest
		if err := c.ShouldBind(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		var imageURLs []string
		form, err := c.MultipartForm()
		if err == nil && form != nil {
			for _, fileHeader := range form.File["images"] {
				file, err := fileHeader.Open()
				if err != nil {
					response.JSON(c, "", http.StatusBadRequest, nil, err)
					return
				}
				imageURL, _, err := s.MediaService.UploadCarImage(file, fileHeader)
				if err != nil {
					response.JSON(c, "", http.StatusBadRequest, nil, err)
					return
				}
				imageURLs = append(imageURLs, imageURL)
			}
		}

		policeReportURL := ""
		if file, fileHeader, err := c.Request.FormFile("police_report"); err == nil {
			policeReportURL, err = s.MediaService.UploadPoliceReport(file, fileHeader)
			if err != nil {
				response.JSON(c, "", http.StatusBadRequest, nil, err)
				return
			}
		}

		car, err := s.LostCarService.CreateReport(userID, ownerName, &request, imageURLs, policeReportURL)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "report submitted", http.StatusCreated, car, nil)
	}
}

func (s *Server) handleUpdateReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")

		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}

		var request models.CreateReportRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		car, svcErr := s.LostCarService.UpdateReport(userID, id, &request)
		if svcErr != nil {
			response.HandleErrors(c, svcErr)
			return
		}
		response.JSON(c, "report updated", http.StatusOK, car, nil)
	}
}

func (s *Server) handleUpdateReportStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")

		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}

		var request models.ReportStatusRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		isAdmin := false
		if userVal, exists := c.Get("user"); exists {
			if user, ok := userVal.(*models.User); ok {
				isAdmin = user.AdminStatus || user.Role.Name == models.RoleAdmin
			}
		}

		if err := s.LostCarService.UpdateStatus(userID, isAdmin, id, request.Status); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "status updated", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleGetReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}

		car, svcErr := s.LostCarService.GetReport(id)
		if svcErr != nil {
			response.HandleErrors(c, svcErr)
			return
		}
		response.JSON(c, "", http.StatusOK, car, nil)
	}
}

func (s *Server) handleGetMyReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")
		cars, err := s.LostCarService.GetReportsByOwner(userID)
		if err != nil {
			log.Printf("error fetching reports for user %d: %v", userID, err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "", http.StatusOK, cars, nil)
	}
}

// handleSearchReports is the public paginated listing: free-text term across
// the searchable columns, status filter and a 1-based page.
func (s *Server) handleSearchReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		page := 1
		if p, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && p > 0 {
			page = p
		}

		filter := db.SearchFilter{
			Term:   strings.TrimSpace(c.Query("term")),
			Status: c.DefaultQuery("status", "all"),
			Page:   page,
		}

		result, err := s.LostCarService.Search(filter)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		result.Pages = PageNumbers(result.TotalPages, result.Page)

		response.JSON(c, "", http.StatusOK, result, nil)
	}
}
