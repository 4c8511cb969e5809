package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-finder/backend/internal/middleware"
	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

type ReviewHandler struct {
	reviews *service.ReviewService
}

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// RegisterRoutes registers the public review listing and the authenticated
// submit route. optionalAuth lets the listing report the caller's own rating.
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth, optionalAuth gin.HandlerFunc) {
	router.GET("/recipes/:id/reviews", optionalAuth, h.List)
	router.POST("/recipes/:id/reviews", requireAuth, h.Submit)
}

func (h *ReviewHandler) List(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	// uuid.Nil for anonymous callers
	viewer, _ := middleware.UserID(c)

	summary, err := h.reviews.List(c.Request.Context(), id, viewer)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to load reviews")
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *ReviewHandler) Submit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req types.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	review, created, err := h.reviews.Submit(c.Request.Context(), userID, id, req)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to submit review")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, review)
}
