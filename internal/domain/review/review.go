// Package review defines the review domain entity and its repository contract.
package review

import "time"

// Review is the durable output of a completed intake dialogue. Field names on
// the wire match the reviews table consumed by the dashboard front-end.
type Review struct {
	ID            string    `json:"id"`
	ContactNumber string    `json:"contact_number"`
	UserName      string    `json:"user_name"`
	ProductName   string    `json:"product_name"`
	ProductReview string    `json:"product_review"`
	CreatedAt     time.Time `json:"created_at"`
}

// Repository defines the persistence contract consumed by the dialogue and
// review services. Store assigns identity and timestamp before insert.
type Repository interface {
	Store(review *Review) error
	FindAll() ([]*Review, error)
	FindByID(id string) (*Review, error)
}
