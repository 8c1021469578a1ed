package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hearsaylabs/revuloop-go/internal/application/services"
	"github.com/hearsaylabs/revuloop-go/internal/domain/review"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/logging"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/performance"
)

// ReviewHandlers contains all review-related HTTP handlers
type ReviewHandlers struct {
	reviewService *services.ReviewService
	logger        *logging.ChanneledLogger
	perfTracker   *performance.Tracker
}

// NewReviewHandlers creates review handlers with injected dependencies
func NewReviewHandlers(reviewService *services.ReviewService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ReviewHandlers {
	return &ReviewHandlers{
		reviewService: reviewService,
		logger:        logger,
		perfTracker:   perfTracker,
	}
}

// GetReviews handles GET /api/v1/reviews - lists stored reviews newest first
func (h *ReviewHandlers) GetReviews(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("get_reviews_request")
	defer marker.Complete()
	h.logger.System().Debug("Received get reviews request", "method", c.Request.Method, "path", c.Request.URL.Path)

	reviews, err := h.reviewService.List()
	if err != nil {
		h.logger.System().Error("Failed to list reviews", "error", err.Error(), "duration", time.Since(start))
		marker.SetSuccess(false)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reviews"})
		return
	}

	if reviews == nil {
		reviews = []*review.Review{}
	}

	h.logger.System().Info("Reviews listed", "count", len(reviews), "duration", time.Since(start))
	marker.SetSuccess(true)
	h.logger.Perf().Debug("Performance for GetReviews request", "duration", marker.Duration, "success", true)

	c.JSON(http.StatusOK, reviews)
}

// PostReview handles POST /api/v1/reviews - creates a review from a JSON body
func (h *ReviewHandlers) PostReview(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("post_review_request")
	defer marker.Complete()
	h.logger.System().Debug("Received post review request", "method", c.Request.Method, "path", c.Request.URL.Path)

	var req services.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.System().Error("Review request body invalid", "error", err.Error())
		marker.SetSuccess(false)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.System().Error("Review request validation failed", "error", err.Error())
		marker.SetSuccess(false)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.reviewService.Create(&req)
	if err != nil {
		h.logger.System().Error("Failed to create review", "error", err.Error(), "duration", time.Since(start))
		marker.SetSuccess(false)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store review"})
		return
	}

	h.logger.System().Info("Review created", "id", rec.ID, "product", rec.ProductName, "duration", time.Since(start))
	marker.SetSuccess(true)
	h.logger.Perf().Debug("Performance for PostReview request", "duration", marker.Duration, "success", true)

	c.JSON(http.StatusOK, rec)
}
