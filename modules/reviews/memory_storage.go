package reviews

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
)

// MemoryStorage keeps reviews and ratings in process memory.
// Transactions read from a private snapshot and record the rows they delete.
// Commit applies those deletes to the live data, so concurrent transactions
// only conflict on the same rows.
type MemoryStorage struct {
	mu       sync.RWMutex
	reviews  map[string]Review
	ratings  map[string]Rating
	articles map[string]string
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		reviews:  make(map[string]Review),
		ratings:  make(map[string]Rating),
		articles: make(map[string]string),
	}
}

// AddReview stores or replaces a review.
func (s *MemoryStorage) AddReview(r Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[r.ID] = r
}

// AddRating stores or replaces a rating.
func (s *MemoryStorage) AddRating(r Rating) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings[r.ID] = r
}

// SetArticleTitle sets the product title shown next to its reviews.
func (s *MemoryStorage) SetArticleTitle(articleID, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[articleID] = title
}

// HasReview reports whether a review with id is stored.
func (s *MemoryStorage) HasReview(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.reviews[id]
	return ok
}

// HasRating reports whether a rating with id is stored.
func (s *MemoryStorage) HasRating(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ratings[id]
	return ok
}

func (s *MemoryStorage) Review(_ context.Context, id string) (*Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findReview(s.reviews, id)
}

func (s *MemoryStorage) ArticleReviewsByUser(_ context.Context, userID string, limit, offset int) ([]Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.userArticleReviews(userID)
	slices.SortFunc(list, func(a, b Review) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	offset = min(max(offset, 0), len(list))
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	for i := range list {
		list[i].ArticleTitle = s.articles[list[i].ObjectID]
	}
	return list, nil
}

func (s *MemoryStorage) CountArticleReviewsByUser(_ context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.userArticleReviews(userID)), nil
}

func (s *MemoryStorage) userArticleReviews(userID string) []Review {
	var list []Review
	for _, r := range s.reviews {
		if r.UserID == userID && r.ObjectType == ArticleType {
			list = append(list, r)
		}
	}
	return list
}

// Begin starts a transaction over a snapshot of the current data.
func (s *MemoryStorage) Begin(ctx context.Context) (Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &memoryTx{
		storage:        s,
		reviews:        maps.Clone(s.reviews),
		ratings:        maps.Clone(s.ratings),
		deletedReviews: make(map[string]struct{}),
		deletedRatings: make(map[string]struct{}),
	}, nil
}

type memoryTx struct {
	storage        *MemoryStorage
	reviews        map[string]Review
	ratings        map[string]Rating
	deletedReviews map[string]struct{}
	deletedRatings map[string]struct{}
	done           bool
}

func (tx *memoryTx) RatingID(_ context.Context, key RatingKey) (string, error) {
	if tx.done {
		return "", ErrTxDone
	}
	for _, id := range slices.Sorted(maps.Keys(tx.ratings)) {
		if key.Matches(tx.ratings[id]) {
			return id, nil
		}
	}
	return "", nil
}

// DeleteRating succeeds when the rating is already gone.
func (tx *memoryTx) DeleteRating(_ context.Context, id string) error {
	if tx.done {
		return ErrTxDone
	}
	delete(tx.ratings, id)
	tx.deletedRatings[id] = struct{}{}
	return nil
}

func (tx *memoryTx) DeleteRatingsByKey(_ context.Context, key RatingKey) (int64, error) {
	if tx.done {
		return 0, ErrTxDone
	}
	var n int64
	for id, r := range tx.ratings {
		if key.Matches(r) {
			delete(tx.ratings, id)
			tx.deletedRatings[id] = struct{}{}
			n++
		}
	}
	return n, nil
}

func (tx *memoryTx) Review(_ context.Context, id string) (*Review, error) {
	if tx.done {
		return nil, ErrTxDone
	}
	return findReview(tx.reviews, id)
}

// DeleteReview succeeds when the review is already gone.
func (tx *memoryTx) DeleteReview(_ context.Context, id string) error {
	if tx.done {
		return ErrTxDone
	}
	delete(tx.reviews, id)
	tx.deletedReviews[id] = struct{}{}
	return nil
}

func (tx *memoryTx) Commit(_ context.Context) error {
	if tx.done {
		return ErrTxDone
	}
	tx.finish()

	tx.storage.mu.Lock()
	defer tx.storage.mu.Unlock()
	for id := range tx.deletedReviews {
		delete(tx.storage.reviews, id)
	}
	for id := range tx.deletedRatings {
		delete(tx.storage.ratings, id)
	}
	return nil
}

func (tx *memoryTx) Rollback(_ context.Context) error {
	if tx.done {
		return ErrTxDone
	}
	tx.finish()
	return nil
}

func (tx *memoryTx) finish() {
	tx.done = true
	tx.reviews = nil
	tx.ratings = nil
}

func findReview(reviews map[string]Review, id string) (*Review, error) {
	r, ok := reviews[id]
	if !ok {
		return nil, ErrReviewNotFound
	}
	return &r, nil
}
