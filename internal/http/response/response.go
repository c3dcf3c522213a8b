package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondErr writes a service error. *apierr.Error values keep their status
// and message; anything else becomes a 500 whose cause stays in the logs.
func RespondErr(c *gin.Context, err error, fallbackCode string) {
	ae := apierr.From(err, fallbackCode)
	if ae.Status >= http.StatusInternalServerError && ae.Status != http.StatusBadGateway {
		_ = c.Error(err)
		RespondError(c, ae.Status, ae.Code, errInternal)
		return
	}
	RespondError(c, ae.Status, ae.Code, ae)
}

var errInternal = errors.New("internal server error")

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
