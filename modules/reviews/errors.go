package reviews

import "errors"

var (
	ErrReviewPermission   = errors.New("review does not belong to the current user")
	ErrReviewType         = errors.New("review is not attached to a product")
	ErrReviewNotFound     = errors.New("review not found")
	ErrMissingIdentifiers = errors.New("article id and review id are required")
	ErrSessionChallenge   = errors.New("invalid session challenge token")
	ErrTxDone             = errors.New("transaction has already been committed or rolled back")
)
