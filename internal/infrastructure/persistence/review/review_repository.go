// Package review provides the concrete SQL-based implementation of
// the review domain repository.
package review

import (
	"database/sql"
	"time"

	"github.com/hearsaylabs/revuloop-go/internal/domain/review"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/logging"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/persistence/database"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/security"
	"github.com/hearsaylabs/revuloop-go/pkg/config"
)

// SQLReviewRepository is the SQL-based implementation of review.Repository.
type SQLReviewRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// NewSQLReviewRepository creates a new instance of the repository.
func NewSQLReviewRepository(db *database.DB, logger *logging.ChanneledLogger) *SQLReviewRepository {
	return &SQLReviewRepository{
		db:     db,
		logger: logger,
	}
}

// Store saves a new Review to the database, assigning its ID and timestamp.
func (r *SQLReviewRepository) Store(rec *review.Review) error {
	const query = `
		INSERT INTO reviews (id, contact_number, user_name, product_name, product_review, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	if rec.ID == "" {
		rec.ID = security.GenerateULID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	start := time.Now()
	r.logger.Database().Debug("Executing review insert", "id", rec.ID, "product", rec.ProductName)

	_, err := r.db.Exec(
		query,
		rec.ID,
		rec.ContactNumber,
		rec.UserName,
		rec.ProductName,
		rec.ProductReview,
		rec.CreatedAt,
	)
	if err != nil {
		r.logger.Database().Error("Review insert failed", "error", err.Error(), "id", rec.ID)
		return err
	}

	r.logger.Database().Info("Review insert completed", "id", rec.ID, "product", rec.ProductName, "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return nil
}

// FindAll retrieves all stored reviews, newest first.
func (r *SQLReviewRepository) FindAll() ([]*review.Review, error) {
	const query = `
		SELECT id, contact_number, user_name, product_name, product_review, created_at
		FROM reviews
		ORDER BY created_at DESC`

	start := time.Now()
	r.logger.Database().Debug("Loading all reviews")

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to load reviews", "error", err.Error())
		return nil, err
	}
	defer rows.Close()

	var reviews []*review.Review
	for rows.Next() {
		rec, err := r.scanReview(rows)
		if err != nil {
			r.logger.Database().Error("Failed to scan review row", "error", err.Error())
			return nil, err
		}
		reviews = append(reviews, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Database().Info("Reviews loaded", "count", len(reviews), "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return reviews, nil
}

// FindByID retrieves a Review by its unique identifier.
func (r *SQLReviewRepository) FindByID(id string) (*review.Review, error) {
	const query = `
		SELECT id, contact_number, user_name, product_name, product_review, created_at
		FROM reviews
		WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading review by ID", "id", id)

	row := r.db.QueryRow(query, id)
	rec, err := r.scanReview(row)
	if err != nil {
		if err == sql.ErrNoRows {
			r.logger.Database().Debug("Review not found by ID", "id", id)
			return nil, nil
		}
		r.logger.Database().Error("Failed to load review by ID", "error", err.Error(), "id", id)
		return nil, err
	}

	r.logger.Database().Info("Review loaded by ID", "id", id, "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLReviewRepository) scanReview(row rowScanner) (*review.Review, error) {
	var rec review.Review
	var productReview sql.NullString

	err := row.Scan(
		&rec.ID,
		&rec.ContactNumber,
		&rec.UserName,
		&rec.ProductName,
		&productReview,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if productReview.Valid {
		rec.ProductReview = productReview.String
	}
	return &rec, nil
}
