package reviews

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/shopreviews/pkg/logger"
)

// Service deletes reviews on behalf of one customer in one shop.
// The acting user, storage and shop are fixed for the life of the service,
// so a Service is created per request.
type Service struct {
	userID  string
	shopID  string
	storage Storage
	logger  *slog.Logger
	metrics *Metrics
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics enables deletion metrics.
func WithMetrics(m *Metrics) ServiceOption {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService creates a Service acting as userID in shopID.
func NewService(userID string, storage Storage, shopID string, opts ...ServiceOption) *Service {
	s := &Service{
		userID:  userID,
		shopID:  shopID,
		storage: storage,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("reviews"), logger.UserID(userID), logger.ShopID(shopID))
	return s
}

// UserID returns the acting user.
func (s *Service) UserID() string { return s.userID }

// DeleteArticleReview removes a product review written by the acting user
// together with the rating submitted alongside it.
//
// The ownership and type checks run before any storage access and return
// ErrReviewPermission or ErrReviewType. Both deletes run in one transaction:
// if either fails the transaction is rolled back and the storage error is
// returned as is.
func (s *Service) DeleteArticleReview(ctx context.Context, review *Review) (err error) {
	started := time.Now()
	defer func() { s.metrics.observe(workflowArticleReview, started, err) }()

	if review == nil {
		return ErrReviewNotFound
	}
	if s.userID == "" || review.UserID != s.userID {
		s.logger.WarnContext(ctx, "review owned by another user",
			logger.ReviewID(review.ID),
			slog.String("owner_id", review.UserID),
		)
		return ErrReviewPermission
	}
	if !review.IsArticleReview() {
		return ErrReviewType
	}

	tx, err := s.storage.Begin(ctx)
	if err != nil {
		return err
	}

	if err := s.deleteReviewAndRating(ctx, tx, review); err != nil {
		s.rollback(ctx, tx, err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "article review deleted",
		logger.ReviewID(review.ID),
		logger.ArticleID(review.ObjectID),
		slog.Bool("with_rating", review.HasRating()),
	)
	return nil
}

func (s *Service) deleteReviewAndRating(ctx context.Context, tx Tx, review *Review) error {
	if review.HasRating() {
		ratingID, err := tx.RatingID(ctx, s.ratingKey(review.ObjectID))
		if err != nil {
			return err
		}
		if ratingID != "" {
			if err := tx.DeleteRating(ctx, ratingID); err != nil {
				return err
			}
		}
	}
	return tx.DeleteReview(ctx, review.ID)
}

// DeleteProductReviewAndRating removes the acting user's rating of the
// article and the review identified by reviewID in one transaction.
//
// A missing rating is not an error. The review must exist, be a product
// review and belong to the acting user, otherwise the transaction is rolled
// back, which restores a rating that was already removed.
func (s *Service) DeleteProductReviewAndRating(ctx context.Context, articleID, reviewID string) (err error) {
	started := time.Now()
	defer func() { s.metrics.observe(workflowProductReview, started, err) }()

	if articleID == "" || reviewID == "" {
		return ErrMissingIdentifiers
	}
	if s.userID == "" {
		return ErrReviewPermission
	}

	tx, err := s.storage.Begin(ctx)
	if err != nil {
		return err
	}

	removed, err := s.deleteRatingThenReview(ctx, tx, articleID, reviewID)
	if err != nil {
		s.rollback(ctx, tx, err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "product review and rating deleted",
		logger.ReviewID(reviewID),
		logger.ArticleID(articleID),
		slog.Int64("ratings_removed", removed),
	)
	return nil
}

func (s *Service) deleteRatingThenReview(ctx context.Context, tx Tx, articleID, reviewID string) (int64, error) {
	removed, err := tx.DeleteRatingsByKey(ctx, s.ratingKey(articleID))
	if err != nil {
		return 0, err
	}

	review, err := tx.Review(ctx, reviewID)
	if err != nil {
		return 0, err
	}
	if !review.IsArticleReview() {
		return 0, ErrReviewType
	}
	if review.UserID != s.userID {
		return 0, ErrReviewPermission
	}

	return removed, tx.DeleteReview(ctx, review.ID)
}

// ArticleReviews returns a page of the acting user's product reviews.
func (s *Service) ArticleReviews(ctx context.Context, limit, offset int) ([]Review, error) {
	if s.userID == "" {
		return nil, nil
	}
	return s.storage.ArticleReviewsByUser(ctx, s.userID, limit, offset)
}

// CountArticleReviews returns how many product reviews the acting user has.
func (s *Service) CountArticleReviews(ctx context.Context) (int, error) {
	if s.userID == "" {
		return 0, nil
	}
	return s.storage.CountArticleReviewsByUser(ctx, s.userID)
}

func (s *Service) ratingKey(articleID string) RatingKey {
	return RatingKey{
		ObjectID:   articleID,
		UserID:     s.userID,
		ShopID:     s.shopID,
		ObjectType: ArticleType,
	}
}

// rollback discards tx. A rollback failure is only logged: the caller
// returns the error that caused the rollback.
func (s *Service) rollback(ctx context.Context, tx Tx, cause error) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, ErrTxDone) {
		s.logger.ErrorContext(ctx, "failed to roll back review deletion",
			logger.Errors(cause, err),
		)
	}
}
