package reviews

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/shopreviews/handler"
	"github.com/dmitrymomot/shopreviews/pkg/logger"
	"github.com/dmitrymomot/shopreviews/pkg/params"
	"github.com/dmitrymomot/shopreviews/pkg/session"
)

// FlashDeleteFailed is the flash message key shown when the review and
// rating of a product could not be deleted.
const FlashDeleteFailed = "ERROR_PRODUCT_REVIEW_AND_RATING_NOT_DELETED"

// Translator resolves message keys in the request language.
type Translator interface {
	Tc(ctx context.Context, key string, args ...string) string
}

// Handler serves the review pages of the customer account.
type Handler struct {
	cfg          Config
	storage      Storage
	translator   Translator
	logger       *slog.Logger
	metrics      *Metrics
	errorHandler handler.ErrorHandler[handler.Context]
	bind         handler.Bind
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHandlerLogger sets the logger for request failures and deletion
// outcomes.
func WithHandlerLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithHandlerMetrics records deletion outcomes in m.
func WithHandlerMetrics(m *Metrics) HandlerOption {
	return func(h *Handler) { h.metrics = m }
}

// WithErrorHandler sets the handler for failed requests. Errors reach it
// already mapped to handler.HTTPError.
func WithErrorHandler(eh handler.ErrorHandler[handler.Context]) HandlerOption {
	return func(h *Handler) {
		if eh != nil {
			h.errorHandler = eh
		}
	}
}

// NewHandler creates the review pages handler.
func NewHandler(cfg Config, storage Storage, translator Translator, opts ...HandlerOption) *Handler {
	h := &Handler{
		cfg:        cfg,
		storage:    storage,
		translator: translator,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.errorHandler == nil {
		h.errorHandler = handler.NewErrorHandler(h.logger, handler.ErrorHandlerConfig{
			Translate: func(ctx context.Context, key string) string {
				return translator.Tc(ctx, key)
			},
		})
	}
	h.bind = params.Bind(params.WithAdminResolver(func(r *http.Request) bool {
		return session.IsAdmin(r.Context())
	}))
	return h
}

// Routes returns the router of the review pages. It expects the session
// middleware to run first.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.guard)

	r.Get("/", handler.Wrap(h.list,
		handler.WithBinders[handler.Context, listRequest](h.bind),
		handler.WithErrorHandler[handler.Context, listRequest](h.handleError),
	))
	r.Post("/delete", handler.Wrap(h.deleteArticleReviewAndRating,
		handler.WithBinders[handler.Context, deleteRequest](h.bind),
		handler.WithErrorHandler[handler.Context, deleteRequest](h.handleError),
	))
	r.Post("/delete-product-review", handler.Wrap(h.deleteProductReviewAndRating,
		handler.WithBinders[handler.Context, deleteProductReviewRequest](h.bind),
		handler.WithErrorHandler[handler.Context, deleteProductReviewRequest](h.handleError),
	))
	return r
}

// guard sends visitors to the account dashboard while the review pages are
// disabled or nobody is logged in.
func (h *Handler) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.UserIDFromContext(r.Context()); !ok || !h.cfg.AllowUsersManageReviews {
			http.Redirect(w, r, h.cfg.DashboardPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type listRequest struct {
	Page int `param:"pgNr"`
}

func (h *Handler) list(ctx handler.Context, req listRequest) handler.Response {
	svc := h.service(ctx)
	size := h.cfg.pageSize()

	count, err := svc.CountArticleReviews(ctx)
	if err != nil {
		return handler.Error(err)
	}
	nav := PageNavigation(count, size, req.Page)

	items, err := svc.ArticleReviews(ctx, size, nav.Current*size)
	if err != nil {
		return handler.Error(err)
	}

	view := listView{
		Title:       h.translator.Tc(ctx, "MY_PRODUCT_REVIEWS"),
		Breadcrumbs: h.breadcrumbs(ctx),
		Reviews:     items,
		Navigation:  h.prefixNavigation(nav),
		DeleteURL:   h.url(listPathBase + "/delete"),
		Page:        nav.Current,
		Labels:      h.labels(ctx),
	}
	if sess, ok := session.FromContext(ctx); ok {
		view.Token = sess.Challenge
		for _, key := range sess.Flashes() {
			view.Flashes = append(view.Flashes, h.translator.Tc(ctx, key))
		}
	}

	return handler.TemplPartial(reviewList(view), listPage(view),
		handler.WithTarget("#account-reviews"),
		handler.WithPatchMode(handler.PatchOuter),
	)
}

type deleteRequest struct {
	ReviewID string `param:"reviewId"`
	Page     int    `param:"pgNr"`
	Token    string `param:"stoken"`
}

// deleteArticleReviewAndRating deletes the posted review of the current
// user. A request without a valid session challenge deletes nothing and
// still lands on the list.
func (h *Handler) deleteArticleReviewAndRating(ctx handler.Context, req deleteRequest) handler.Response {
	svc := h.service(ctx)

	if sess, ok := session.FromContext(ctx); ok && sess.CheckChallenge(req.Token) {
		review, err := h.storage.Review(ctx, req.ReviewID)
		if err != nil {
			return handler.Error(err)
		}
		if err := svc.DeleteArticleReview(ctx, review); err != nil {
			return handler.Error(err)
		}
	} else {
		h.logger.WarnContext(ctx, "review deletion without valid session challenge",
			logger.ReviewID(req.ReviewID),
		)
	}

	return handler.Redirect(h.listPath(ctx, svc, req.Page))
}

type deleteProductReviewRequest struct {
	ArticleID string `param:"aid"`
	ReviewID  string `param:"reviewId"`
	Page      int    `param:"pgNr"`
	Token     string `param:"stoken"`
}

// deleteProductReviewAndRating never fails the request: a failed deletion
// leaves a flash message on the list page.
func (h *Handler) deleteProductReviewAndRating(ctx handler.Context, req deleteProductReviewRequest) handler.Response {
	svc := h.service(ctx)
	sess, _ := session.FromContext(ctx)

	err := ErrSessionChallenge
	if sess != nil && sess.CheckChallenge(req.Token) {
		err = svc.DeleteProductReviewAndRating(ctx, req.ArticleID, req.ReviewID)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "product review and rating not deleted",
			logger.ArticleID(req.ArticleID),
			logger.ReviewID(req.ReviewID),
			logger.Error(err),
		)
		if sess != nil {
			sess.AddFlash(FlashDeleteFailed)
		}
	}

	return handler.Redirect(h.listPath(ctx, svc, req.Page))
}

func (h *Handler) service(ctx context.Context) *Service {
	userID, _ := session.UserIDFromContext(ctx)
	return NewService(userID, h.storage, h.cfg.ShopID,
		WithLogger(h.logger),
		WithMetrics(h.metrics),
	)
}

// listPath is the list location for the review count after a deletion.
func (h *Handler) listPath(ctx context.Context, svc *Service, page int) string {
	count, err := svc.CountArticleReviews(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to count reviews", logger.Error(err))
	}
	return h.url(ListPath(count, h.cfg.pageSize(), page))
}

func (h *Handler) url(path string) string {
	return strings.TrimSuffix(h.cfg.BasePath, "/") + "/" + path
}

func (h *Handler) prefixNavigation(nav Navigation) Navigation {
	for _, u := range []*string{&nav.First, &nav.Last, &nav.Previous, &nav.Next} {
		if *u != "" {
			*u = h.url(*u)
		}
	}
	for i := range nav.Links {
		nav.Links[i].URL = h.url(nav.Links[i].URL)
	}
	return nav
}

// breadcrumbs links the current page back to itself, keeping the page
// number but never the session token.
func (h *Handler) breadcrumbs(ctx handler.Context) []breadcrumb {
	current := params.RequestURL(ctx.Request())
	if current == "" {
		current = h.url(listPathBase)
	}
	return []breadcrumb{
		{Title: h.translator.Tc(ctx, "MY_ACCOUNT"), URL: h.cfg.DashboardPath},
		{Title: h.translator.Tc(ctx, "MY_PRODUCT_REVIEWS"), URL: current},
	}
}

func (h *Handler) handleError(ctx handler.Context, err error) {
	h.errorHandler(ctx, httpError(err))
}

// httpError maps domain failures to HTTP errors, keeping err in the chain
// for logging.
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrReviewPermission):
		return errors.Join(handler.ErrForbidden, err)
	case errors.Is(err, ErrReviewType),
		errors.Is(err, ErrMissingIdentifiers),
		errors.Is(err, params.ErrInvalidValue),
		errors.Is(err, params.ErrInvalidQuery),
		errors.Is(err, params.ErrInvalidForm):
		return errors.Join(handler.ErrBadRequest, err)
	case errors.Is(err, params.ErrBodyTooLarge):
		return errors.Join(handler.NewHTTPError(http.StatusRequestEntityTooLarge, "request_entity_too_large"), err)
	case errors.Is(err, ErrReviewNotFound):
		return errors.Join(handler.ErrNotFound, err)
	default:
		return err
	}
}
