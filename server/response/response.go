package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/teerapatch/rodhai/errors"
)

// JSON writes the standard response envelope.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	errMessage := ""
	if err != nil {
		errMessage = err.Error()
	}

	c.JSON(status, gin.H{
		"message": message,
		"data":    data,
		"errors":  errMessage,
		"status":  http.StatusText(status),
	})
}

// HandleErrors maps service-layer errors onto HTTP responses. A typed error
// carries its own status; anything else is a 500.
func HandleErrors(c *gin.Context, err error) {
	switch e := err.(type) {
	case *errs.Error:
		JSON(c, "", e.Status, nil, e)
	default:
		JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
	}
}
