package store

import (
	"context"
	"errors"

	"desireways/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate")
)

// Store is the document-store boundary. Implementations must make counter
// updates server-side atomic increments and array updates set-union/pull
// operations, never read-modify-write, so concurrent writers cannot lose
// updates (e.g. N simultaneous signups against one referral code must leave
// the referrer with referralsCount+N).
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByReferralCode(ctx context.Context, code string) (*models.User, error)

	// CreditReferrer atomically credits the referrer for one referred user:
	// increments points and referralsCount, appends the points log entry and
	// records the referred user id. A referrer is credited at most once per
	// distinct referred user; returns false when this referred user was
	// already recorded.
	CreditReferrer(ctx context.Context, referrerID, referredID primitive.ObjectID, points int, entry models.PointsEntry) (bool, error)

	// CompleteProfile sets the profile and transitions profileStatus from
	// incomplete to complete, crediting the bonus in the same update.
	// Returns false without mutating anything when the profile was already
	// completed, so a double submit cannot double-credit.
	CompleteProfile(ctx context.Context, userID primitive.ObjectID, profile models.Profile, bonus models.PointsEntry, editedAt int64) (bool, error)

	// UpdateProfile replaces the profile fields on an already-completed
	// profile. No bonus is involved.
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, profile models.Profile, editedAt int64) error

	// AppendAuditLog appends an audit entry to the user's logs.
	AppendAuditLog(ctx context.Context, userID primitive.ObjectID, entry models.AuditLog) error

	// Wishlist: set membership, add is a union (never duplicates).
	AddToWishlist(ctx context.Context, userID primitive.ObjectID, productID string) error
	RemoveFromWishlist(ctx context.Context, userID primitive.ObjectID, productID string) error

	// Products
	Products(ctx context.Context, category string) ([]models.Product, error)
	ProductByID(ctx context.Context, id string) (*models.Product, error)
	SeedProducts(ctx context.Context, products []models.Product) error

	// Reviews
	InsertReview(ctx context.Context, review *models.Review) error
	ReviewByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	UpdateReview(ctx context.Context, id, userID primitive.ObjectID, rating int, text string, updatedAt int64) (bool, error)
	DeleteReview(ctx context.Context, id, userID primitive.ObjectID) (bool, error)
	ReviewsByProduct(ctx context.Context, productID string) ([]models.Review, error)
}

var active Store

func Set(s Store) { active = s }

func Get() Store { return active }

// OverallRating computes the arithmetic mean of all ratings for a product,
// 0 when the product has no reviews.
func OverallRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
