package reviews

import "context"

// Storage provides read access to reviews and opens write transactions.
type Storage interface {
	// Review loads a review by id. Returns ErrReviewNotFound when absent.
	Review(ctx context.Context, id string) (*Review, error)
	// ArticleReviewsByUser returns the user's product reviews, newest first.
	ArticleReviewsByUser(ctx context.Context, userID string, limit, offset int) ([]Review, error)
	CountArticleReviewsByUser(ctx context.Context, userID string) (int, error)
	Begin(ctx context.Context) (Tx, error)
}

// Tx is a unit of work over reviews and ratings. All writes made through a
// Tx become visible together on Commit or are discarded on Rollback.
type Tx interface {
	// RatingID returns the id of the rating matching key, or "" when the
	// user has not rated the object.
	RatingID(ctx context.Context, key RatingKey) (string, error)
	// DeleteRating and DeleteReview succeed when the row is already gone.
	DeleteRating(ctx context.Context, id string) error
	// DeleteRatingsByKey removes every rating matching key and reports how
	// many were removed.
	DeleteRatingsByKey(ctx context.Context, key RatingKey) (int64, error)
	Review(ctx context.Context, id string) (*Review, error)
	DeleteReview(ctx context.Context, id string) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
