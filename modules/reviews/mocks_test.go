package reviews_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/shopreviews/modules/reviews"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Review(ctx context.Context, id string) (*reviews.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reviews.Review), args.Error(1)
}

func (m *MockStorage) ArticleReviewsByUser(ctx context.Context, userID string, limit, offset int) ([]reviews.Review, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reviews.Review), args.Error(1)
}

func (m *MockStorage) CountArticleReviewsByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) Begin(ctx context.Context) (reviews.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(reviews.Tx), args.Error(1)
}

type MockTx struct {
	mock.Mock
}

func (m *MockTx) RatingID(ctx context.Context, key reviews.RatingKey) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockTx) DeleteRating(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTx) DeleteRatingsByKey(ctx context.Context, key reviews.RatingKey) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTx) Review(ctx context.Context, id string) (*reviews.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reviews.Review), args.Error(1)
}

func (m *MockTx) DeleteReview(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
