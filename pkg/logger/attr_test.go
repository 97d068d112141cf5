package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shopreviews/pkg/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()

	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	t.Parallel()

	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestIdentifierAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		attr func(string) slog.Attr
		key  string
	}{
		{"user", logger.UserID, "user_id"},
		{"shop", logger.ShopID, "shop_id"},
		{"review", logger.ReviewID, "review_id"},
		{"article", logger.ArticleID, "article_id"},
		{"request", logger.RequestID, "request_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			attr := tt.attr("id-1")
			assert.Equal(t, tt.key, attr.Key)
			assert.Equal(t, "id-1", attr.Value.String())
			assert.True(t, tt.attr("").Equal(slog.Attr{}))
		})
	}
}

func TestComponentAndEvent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "component", logger.Component("reviews").Key)
	assert.Equal(t, "event", logger.Event("deleted").Key)
	assert.Equal(t, "duration", logger.Duration("1s").Key)
}
