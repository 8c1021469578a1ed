package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/hearsaylabs/revuloop-go/internal/domain/review"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/logging"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/performance"
)

// ReviewService handles listing and direct creation of review records.
type ReviewService struct {
	reviews     review.Repository
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewReviewService creates a new review service
func NewReviewService(reviews review.Repository, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ReviewService {
	return &ReviewService{
		reviews:     reviews,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// CreateRequest represents the structure for direct review creation requests.
// Wire keys match the reviews table and the dashboard front-end.
type CreateRequest struct {
	ContactNumber string `json:"contact_number"`
	UserName      string `json:"user_name"`
	ProductName   string `json:"product_name"`
	ProductReview string `json:"product_review"`
}

// Validate checks that the required fields are present.
func (r *CreateRequest) Validate() error {
	if strings.TrimSpace(r.ContactNumber) == "" {
		return fmt.Errorf("contact_number is required")
	}
	if strings.TrimSpace(r.UserName) == "" {
		return fmt.Errorf("user_name is required")
	}
	if strings.TrimSpace(r.ProductName) == "" {
		return fmt.Errorf("product_name is required")
	}
	return nil
}

// List returns all stored reviews, newest first.
func (s *ReviewService) List() ([]*review.Review, error) {
	start := time.Now()
	marker := s.perfTracker.StartOperation("reviews:list")
	defer marker.Complete()

	reviews, err := s.reviews.FindAll()
	if err != nil {
		marker.SetError(err)
		return nil, err
	}

	marker.SetSuccess(true)
	s.logger.Perf().Debug("Performance for List reviews", "duration", time.Since(start), "count", len(reviews))
	return reviews, nil
}

// Create persists a review submitted directly through the HTTP API.
func (s *ReviewService) Create(req *CreateRequest) (*review.Review, error) {
	marker := s.perfTracker.StartOperation("reviews:create")
	defer marker.Complete()

	if err := req.Validate(); err != nil {
		marker.SetError(err)
		return nil, err
	}

	rec := &review.Review{
		ContactNumber: req.ContactNumber,
		UserName:      req.UserName,
		ProductName:   req.ProductName,
		ProductReview: req.ProductReview,
	}

	if err := s.reviews.Store(rec); err != nil {
		marker.SetError(err)
		return nil, err
	}

	marker.SetSuccess(true)
	return rec, nil
}
