package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Points log entry types.
const (
	PointsTypeSignup           = "new_signup"
	PointsTypeReferralBonus    = "referral_bonus"
	PointsTypeProfileCompleted = "profile_completed"
)

// Profile completion states.
const (
	ProfileIncomplete = "incomplete"
	ProfileComplete   = "complete"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash *string            `bson:"passwordHash,omitempty" json:"-"`
	AuthProvider string             `bson:"authProvider" json:"authProvider"`
	GoogleID     *string            `bson:"googleId,omitempty" json:"-"`

	CreatedAt int64 `bson:"createdAt" json:"createdAt"`

	// Referral & points ledger
	Points         int                  `bson:"points" json:"points"`
	ReferralCode   string               `bson:"referralCode" json:"referralCode"`
	ReferralsCount int                  `bson:"referralsCount" json:"referralsCount"`
	ReferredUsers  []primitive.ObjectID `bson:"referredUsers" json:"-"`
	PointsLog      []PointsEntry        `bson:"pointsLog" json:"pointsLog"`

	// Profile
	ProfileStatus     string   `bson:"profileStatus" json:"profileStatus"` // incomplete | complete
	Profile           *Profile `bson:"profile,omitempty" json:"profile,omitempty"`
	LastProfileEditAt int64    `bson:"lastProfileEditAt" json:"-"`

	Wishlist []WishlistItem `bson:"wishlist" json:"wishlist"`

	Logs []AuditLog `bson:"logs" json:"-"`
}

// PointsEntry is one append-only record in a user's points log.
// Entries are never mutated or reordered after insertion.
type PointsEntry struct {
	Type        string `bson:"type" json:"type"`
	Points      int    `bson:"points" json:"points"`
	Description string `bson:"description" json:"description"`
	Timestamp   int64  `bson:"timestamp" json:"timestamp"`
}

type Profile struct {
	ProfileName string `bson:"profileName" json:"profileName"`
	DateOfBirth string `bson:"dateOfBirth" json:"dateOfBirth"` // YYYY-MM-DD
	PhoneNumber string `bson:"phoneNumber" json:"phoneNumber"`
}

type WishlistItem struct {
	ProductID string `bson:"productId" json:"productId"`
}

// Audit log event names.
const (
	AuditEventLogin          = "login"
	AuditEventProfileUpdated = "profile_updated"
)

// AuditLog is an append-only record written on logins and profile edits.
type AuditLog struct {
	Event              string `bson:"event" json:"event"`
	LastLoginIP        string `bson:"lastLoginIP" json:"lastLoginIP"`
	LastLoginTimestamp int64  `bson:"lastLoginTimestamp" json:"lastLoginTimestamp"`
	Location           string `bson:"location" json:"location"`
	UserAgent          string `bson:"userAgent" json:"userAgent"`
}
