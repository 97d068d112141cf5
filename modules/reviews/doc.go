// Package reviews lets customers delete the product reviews they wrote,
// together with the rating submitted alongside each review.
//
// Service holds the deletion rules for one acting user in one shop. A review
// may only be deleted by its author and only when it is attached to a
// product (ArticleType). The review and its rating are removed in a single
// Storage transaction:
//
//	svc := reviews.NewService(userID, storage, shopID, reviews.WithLogger(log))
//	if err := svc.DeleteArticleReview(ctx, review); err != nil {
//		// ErrReviewPermission, ErrReviewType or a storage error
//	}
//
// PGStorage keeps reviews in PostgreSQL; run Migrations with pg.Migrate
// first. MemoryStorage serves tests and local development.
//
// Handler mounts the account review pages:
//
//	r.Mount("/account_reviewlist", reviews.NewHandler(cfg, storage, translator).Routes())
package reviews
