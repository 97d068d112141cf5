package reviews

import "time"

// ArticleType is the object type tag of product reviews and ratings.
const ArticleType = "oxarticle"

// Review is a user-authored review of a shop object.
type Review struct {
	ID         string
	ObjectID   string
	ObjectType string
	UserID     string
	Text       string
	Rating     int
	Lang       int
	CreatedAt  time.Time

	// ArticleTitle is filled by list reads for display only.
	ArticleTitle string
}

// IsArticleReview reports whether the review is attached to a product.
func (r *Review) IsArticleReview() bool {
	return r != nil && r.ObjectType == ArticleType
}

// HasRating reports whether the review was submitted together with a
// score, which is stored as a separate rating record.
func (r *Review) HasRating() bool {
	return r != nil && r.Rating > 0
}

// Rating is a numeric score a user gave to a shop object.
// There is at most one rating per object, user, shop and type.
type Rating struct {
	ID        string
	ShopID    string
	UserID    string
	Type      string
	ObjectID  string
	Value     int
	CreatedAt time.Time
}

// RatingKey identifies the rating a user left for an object in a shop.
type RatingKey struct {
	ObjectID   string
	UserID     string
	ShopID     string
	ObjectType string
}

// Matches reports whether the rating belongs to the key.
func (k RatingKey) Matches(r Rating) bool {
	return r.ObjectID == k.ObjectID &&
		r.UserID == k.UserID &&
		r.ShopID == k.ShopID &&
		r.Type == k.ObjectType
}
