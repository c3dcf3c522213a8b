package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/http/response"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/services"
)

type ReviewHandler struct {
	reviews services.ReviewService
}

func NewReviewHandler(reviews services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// POST /api/generate-review
func (h *ReviewHandler) GenerateReview(c *gin.Context) {
	var req services.GenerateReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("invalid request body"))
		return
	}
	res, err := h.reviews.Generate(c.Request.Context(), req)
	if err != nil {
		response.RespondErr(c, err, "review_failed")
		return
	}
	response.RespondOK(c, res)
}
