package reviews

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/shopreviews/pkg/pg"
)

// DB is the part of *pgxpool.Pool used by PGStorage.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStorage stores reviews and ratings in PostgreSQL.
type PGStorage struct {
	db DB
}

// NewPGStorage creates a PGStorage on top of a pgx pool.
func NewPGStorage(db DB) *PGStorage {
	return &PGStorage{db: db}
}

const (
	selectReview = `SELECT oxid, oxobjectid, oxtype, oxuserid, oxtext, oxrating, oxlang, oxcreate
		FROM oxreviews WHERE oxid = $1`

	selectUserArticleReviews = `SELECT r.oxid, r.oxobjectid, r.oxtype, r.oxuserid, r.oxtext, r.oxrating, r.oxlang, r.oxcreate,
			COALESCE(a.oxtitle, '')
		FROM oxreviews r
		LEFT JOIN oxarticles a ON a.oxid = r.oxobjectid
		WHERE r.oxuserid = $1 AND r.oxtype = $2
		ORDER BY r.oxcreate DESC, r.oxid
		LIMIT $3 OFFSET $4`

	countUserArticleReviews = `SELECT count(*) FROM oxreviews WHERE oxuserid = $1 AND oxtype = $2`

	selectRatingID = `SELECT oxid FROM oxratings
		WHERE oxobjectid = $1 AND oxuserid = $2 AND oxshopid = $3 AND oxtype = $4
		LIMIT 1`

	deleteRating = `DELETE FROM oxratings WHERE oxid = $1`

	deleteRatingsByKey = `DELETE FROM oxratings
		WHERE oxobjectid = $1 AND oxuserid = $2 AND oxshopid = $3 AND oxtype = $4`

	deleteReview = `DELETE FROM oxreviews WHERE oxid = $1`
)

func (s *PGStorage) Review(ctx context.Context, id string) (*Review, error) {
	return scanReview(s.db.QueryRow(ctx, selectReview, id))
}

func (s *PGStorage) ArticleReviewsByUser(ctx context.Context, userID string, limit, offset int) ([]Review, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := s.db.Query(ctx, selectUserArticleReviews, userID, ArticleType, lim, max(offset, 0))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Review, error) {
		var r Review
		err := row.Scan(&r.ID, &r.ObjectID, &r.ObjectType, &r.UserID, &r.Text, &r.Rating, &r.Lang, &r.CreatedAt, &r.ArticleTitle)
		return r, err
	})
}

func (s *PGStorage) CountArticleReviewsByUser(ctx context.Context, userID string) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, countUserArticleReviews, userID, ArticleType).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *PGStorage) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &pgTx{tx: tx}, nil
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) RatingID(ctx context.Context, key RatingKey) (string, error) {
	var id string
	err := t.tx.QueryRow(ctx, selectRatingID, key.ObjectID, key.UserID, key.ShopID, key.ObjectType).Scan(&id)
	if pg.IsNotFoundError(err) {
		return "", nil
	}
	return id, txErr(err)
}

// DeleteRating succeeds when no row matches, so a rating removed by a
// concurrent request does not fail the workflow.
func (t *pgTx) DeleteRating(ctx context.Context, id string) error {
	_, err := t.tx.Exec(ctx, deleteRating, id)
	return txErr(err)
}

func (t *pgTx) DeleteRatingsByKey(ctx context.Context, key RatingKey) (int64, error) {
	tag, err := t.tx.Exec(ctx, deleteRatingsByKey, key.ObjectID, key.UserID, key.ShopID, key.ObjectType)
	if err != nil {
		return 0, txErr(err)
	}
	return tag.RowsAffected(), nil
}

func (t *pgTx) Review(ctx context.Context, id string) (*Review, error) {
	r, err := scanReview(t.tx.QueryRow(ctx, selectReview, id))
	return r, txErr(err)
}

func (t *pgTx) DeleteReview(ctx context.Context, id string) error {
	_, err := t.tx.Exec(ctx, deleteReview, id)
	return txErr(err)
}

func (t *pgTx) Commit(ctx context.Context) error {
	return txErr(t.tx.Commit(ctx))
}

func (t *pgTx) Rollback(ctx context.Context) error {
	return txErr(t.tx.Rollback(ctx))
}

func scanReview(row pgx.Row) (*Review, error) {
	var r Review
	err := row.Scan(&r.ID, &r.ObjectID, &r.ObjectType, &r.UserID, &r.Text, &r.Rating, &r.Lang, &r.CreatedAt)
	if pg.IsNotFoundError(err) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func txErr(err error) error {
	if pg.IsTxClosedError(err) {
		return errors.Join(ErrTxDone, err)
	}
	return err
}
