package reviews_test

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shopreviews/modules/reviews"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := reviews.NewMetrics(reg)

	s := seedStorage()
	other := reviews.NewService("user-2", s, shopID, reviews.WithMetrics(m))
	owner := reviews.NewService(userID, s, shopID, reviews.WithMetrics(m))

	review, err := s.Review(ctx, "review-1")
	require.NoError(t, err)
	assert.ErrorIs(t, other.DeleteArticleReview(ctx, review), reviews.ErrReviewPermission)
	require.NoError(t, owner.DeleteArticleReview(ctx, review))
	assert.ErrorIs(t, owner.DeleteProductReviewAndRating(ctx, "", ""), reviews.ErrMissingIdentifiers)

	expected := `
# HELP shop_reviews_deletions_total Review deletion attempts by workflow and outcome
# TYPE shop_reviews_deletions_total counter
shop_reviews_deletions_total{outcome="deleted",workflow="article_review"} 1
shop_reviews_deletions_total{outcome="forbidden",workflow="article_review"} 1
shop_reviews_deletions_total{outcome="invalid",workflow="product_review_and_rating"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "shop_reviews_deletions_total"))

	count, err := testutil.GatherAndCount(reg, "shop_reviews_deletion_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	svc := reviews.NewService(userID, seedStorage(), shopID, reviews.WithMetrics(nil))
	assert.NoError(t, svc.DeleteProductReviewAndRating(context.Background(), "article-1", "review-1"))
}
