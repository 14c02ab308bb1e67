// internal/handlers/review.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// GET /reviews/:id (product id)
func (h *ReviewHandler) GetProductReviews(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c, services.DefaultReviewsPageLimit)
	page, err := h.reviewService.ListProductReviews(c.Request.Context(), productID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, page)
}

// POST /reviews/:id (product id)
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	productID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), actor.UserID, productID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, review)
}

// PUT /reviews/:id (review id)
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	reviewID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), actor, reviewID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, review)
}

// DELETE /reviews/:id (review id)
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	reviewID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), actor, reviewID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Review deleted successfully"})
}
