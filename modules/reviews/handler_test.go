package reviews_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shopreviews/modules/reviews"
	"github.com/dmitrymomot/shopreviews/pkg/i18n"
	"github.com/dmitrymomot/shopreviews/pkg/session"
)

const challenge = "challenge-token"

func newTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator(context.Background(), i18n.NewFSAdapter(reviews.Locales, "locales"))
	require.NoError(t, err)
	return tr
}

func newSession(userID string) *session.Session {
	sess := session.NewSession("token", challenge, time.Hour)
	sess.UserID = userID
	return sess
}

// serve mounts the review routes like the server does and runs one request
// with sess attached.
func serve(t *testing.T, cfg reviews.Config, s reviews.Storage, sess *session.Session, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	h := reviews.NewHandler(cfg, s, newTranslator(t))
	routes := http.StripPrefix("/account_reviewlist", h.Routes())

	if sess != nil {
		req = req.WithContext(session.WithSession(req.Context(), sess))
	}
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)
	return rec
}

func post(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandler_Guard(t *testing.T) {
	t.Parallel()

	disabled := reviews.DefaultConfig()
	disabled.AllowUsersManageReviews = false

	tests := []struct {
		name string
		cfg  reviews.Config
		sess *session.Session
	}{
		{"no session", reviews.DefaultConfig(), nil},
		{"anonymous session", reviews.DefaultConfig(), newSession("")},
		{"feature disabled", disabled, newSession(userID)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(t, tt.cfg, seedStorage(), tt.sess, httptest.NewRequest(http.MethodGet, "/account_reviewlist/", nil))
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/account", rec.Header().Get("Location"))
		})
	}
}

func TestHandler_List(t *testing.T) {
	t.Parallel()

	s := reviews.NewMemoryStorage()
	s.SetArticleTitle("article-1", "Kite <Pro>")
	for i := range 12 {
		r := *articleReview(i % 6)
		r.ID = fmt.Sprintf("review-%02d", i)
		r.CreatedAt = time.Date(2026, 1, 1, 0, i, 0, 0, time.UTC)
		s.AddReview(r)
	}

	sess := newSession(userID)
	sess.AddFlash(reviews.FlashDeleteFailed)

	req := httptest.NewRequest(http.MethodGet, "/account_reviewlist/?pgNr=1&stoken=leak", nil)
	req.Header.Set("Accept-Language", "en")
	rec := serve(t, reviews.DefaultConfig(), s, sess, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<a href="/account">My account</a>`)
	assert.Contains(t, body, "My product reviews")
	assert.Contains(t, body, "The review and rating could not be deleted.")
	assert.Contains(t, body, "Kite &lt;Pro&gt;")
	assert.Contains(t, body, `id="review-review-01"`)
	assert.NotContains(t, body, `id="review-review-11"`)
	assert.Contains(t, body, `value="`+challenge+`"`)
	assert.Contains(t, body, `href="/account_reviewlist"`)
	assert.Contains(t, body, `<a href="/account_reviewlist/?pgNr=1">My product reviews</a>`)
	assert.NotContains(t, body, "leak")
	assert.Empty(t, sess.Flash)
}

func TestHandler_ListDataStarPatch(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/account_reviewlist/", nil)
	req.Header.Set("Accept", "text/event-stream")
	rec := serve(t, reviews.DefaultConfig(), seedStorage(), newSession(userID), req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "event: datastar-patch-elements")
	assert.Contains(t, body, "selector #account-reviews")
	assert.Contains(t, body, `<section id="account-reviews">`)
	assert.Contains(t, body, `id="review-review-1"`)
	assert.NotContains(t, body, "<h1>")
}

func TestHandler_DeleteArticleReview(t *testing.T) {
	t.Parallel()

	t.Run("deletes and redirects to list", func(t *testing.T) {
		t.Parallel()

		s := seedStorage()
		rec := serve(t, reviews.DefaultConfig(), s, newSession(userID), post("/account_reviewlist/delete",
			url.Values{"reviewId": {"review-1"}, "stoken": {challenge}, "pgNr": {"3"}}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/account_reviewlist", rec.Header().Get("Location"))
		assert.False(t, s.HasReview("review-1"))
		assert.False(t, s.HasRating("rating-1"))
	})

	t.Run("keeps page when items remain", func(t *testing.T) {
		t.Parallel()

		s := seedStorage()
		for i := range 11 {
			r := *articleReview(0)
			r.ID = fmt.Sprintf("extra-%02d", i)
			s.AddReview(r)
		}
		rec := serve(t, reviews.DefaultConfig(), s, newSession(userID), post("/account_reviewlist/delete",
			url.Values{"reviewId": {"review-1"}, "stoken": {challenge}, "pgNr": {"1"}}))

		assert.Equal(t, "/account_reviewlist?pgNr=1", rec.Header().Get("Location"))
	})

	t.Run("invalid challenge deletes nothing", func(t *testing.T) {
		t.Parallel()

		s := seedStorage()
		rec := serve(t, reviews.DefaultConfig(), s, newSession(userID), post("/account_reviewlist/delete",
			url.Values{"reviewId": {"review-1"}, "stoken": {"forged"}}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.True(t, s.HasReview("review-1"))
	})

	t.Run("review of another user is forbidden", func(t *testing.T) {
		t.Parallel()

		s := seedStorage()
		rec := serve(t, reviews.DefaultConfig(), s, newSession("user-2"), post("/account_reviewlist/delete",
			url.Values{"reviewId": {"review-1"}, "stoken": {challenge}}))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "You are not allowed to delete this review.")
		assert.True(t, s.HasReview("review-1"))
	})

	t.Run("unknown review", func(t *testing.T) {
		t.Parallel()

		rec := serve(t, reviews.DefaultConfig(), seedStorage(), newSession(userID), post("/account_reviewlist/delete",
			url.Values{"reviewId": {"missing"}, "stoken": {challenge}}))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non product review", func(t *testing.T) {
		t.Parallel()

		s := seedStorage()
		r := articleReview(0)
		r.ID = "list-review"
		r.ObjectType = "oxrecommlist"
		s.AddReview(*r)

		rec := serve(t, reviews.DefaultConfig(), s, newSession(userID), post("/account_reviewlist/delete",
			url.Values{"reviewId": {"list-review"}, "stoken": {challenge}}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid page number", func(t *testing.T) {
		t.Parallel()

		rec := serve(t, reviews.DefaultConfig(), seedStorage(), newSession(userID), post("/account_reviewlist/delete",
			url.Values{"pgNr": {"two"}}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_DeleteProductReviewAndRating(t *testing.T) {
	t.Parallel()

	t.Run("deletes both", func(t *testing.T) {
		t.Parallel()

		s := seedStorage()
		sess := newSession(userID)
		rec := serve(t, reviews.DefaultConfig(), s, sess, post("/account_reviewlist/delete-product-review",
			url.Values{"aid": {"article-1"}, "reviewId": {"review-1"}, "stoken": {challenge}}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/account_reviewlist", rec.Header().Get("Location"))
		assert.False(t, s.HasReview("review-1"))
		assert.False(t, s.HasRating("rating-1"))
		assert.Empty(t, sess.Flash)
	})

	failures := []struct {
		name string
		form url.Values
	}{
		{"missing article id", url.Values{"reviewId": {"review-1"}, "stoken": {challenge}}},
		{"unknown review", url.Values{"aid": {"article-1"}, "reviewId": {"missing"}, "stoken": {challenge}}},
		{"invalid challenge", url.Values{"aid": {"article-1"}, "reviewId": {"review-1"}, "stoken": {"forged"}}},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := seedStorage()
			sess := newSession(userID)
			rec := serve(t, reviews.DefaultConfig(), s, sess, post("/account_reviewlist/delete-product-review", tt.form))

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, []string{reviews.FlashDeleteFailed}, sess.Flash)
			assert.True(t, s.HasReview("review-1"))
			assert.True(t, s.HasRating("rating-1"))
		})
	}
}
