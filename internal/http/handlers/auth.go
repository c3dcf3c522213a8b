package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/http/response"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/services"
)

type AuthHandler struct {
	authService services.AdminAuthService
}

func NewAuthHandler(authService services.AdminAuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /admin/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	tok, err := ah.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.RespondErr(c, err, "login_failed")
		return
	}
	response.RespondOK(c, tok)
}
