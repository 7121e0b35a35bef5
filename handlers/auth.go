package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"time"

	"desireways/middleware"
	"desireways/models"
	"desireways/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type SignupRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	ReferralCode string `json:"referralCode"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// generateReferralCode produces a short unique code ("REF" + 6 hex chars).
// Retries on the rare collision against an existing user.
func generateReferralCode(ctx context.Context) (string, error) {
	for i := 0; i < 5; i++ {
		b := make([]byte, 3)
		if _, err := rand.Read(b); err != nil {
			return "", err
		}
		code := "REF" + hex.EncodeToString(b)
		_, err := store.Get().UserByReferralCode(ctx, code)
		if err == store.ErrNotFound {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("could not generate a unique referral code")
}

// newUserRecord builds the ledger record for a fresh signup: starting
// balance, referral code, and the signup entry in the points log.
func newUserRecord(ctx context.Context, email, provider string) (*models.User, error) {
	code, err := generateReferralCode(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	return &models.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		AuthProvider: provider,
		CreatedAt:    now,

		Points:        signupBonusPoints,
		ReferralCode:  code,
		ReferredUsers: []primitive.ObjectID{},
		PointsLog: []models.PointsEntry{{
			Type:        models.PointsTypeSignup,
			Points:      signupBonusPoints,
			Description: "Signup bonus",
			Timestamp:   now,
		}},

		ProfileStatus: models.ProfileIncomplete,
		Wishlist:      []models.WishlistItem{},
		Logs:          []models.AuditLog{},
	}, nil
}

// creditReferral resolves a referral code and credits the referrer. The
// referred user's account already exists at this point; any failure here is
// reported back as a note but never unwinds the signup.
func creditReferral(ctx context.Context, code string, referredID primitive.ObjectID) string {
	referrer, err := store.Get().UserByReferralCode(ctx, code)
	if err == store.ErrNotFound {
		return "Invalid referral code"
	}
	if err != nil {
		log.Printf("[Signup] Referral lookup failed: %v", err)
		return "Referral credit could not be applied"
	}
	if referrer.ID == referredID {
		return "Invalid referral code"
	}

	entry := models.PointsEntry{
		Type:        models.PointsTypeReferralBonus,
		Points:      referralBonusPoints,
		Description: "Referral bonus",
		Timestamp:   time.Now().Unix(),
	}
	credited, err := store.Get().CreditReferrer(ctx, referrer.ID, referredID, referralBonusPoints, entry)
	if err != nil {
		log.Printf("[Signup] Referral credit failed: %v", err)
		return "Referral credit could not be applied"
	}
	if !credited {
		return "Referral already credited"
	}
	return ""
}

func Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	hashed := string(hashedPassword)

	user, err := newUserRecord(ctx, req.Email, "email")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	user.PasswordHash = &hashed

	if err := store.Get().CreateUser(ctx, user); err == store.ErrDuplicate {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
		return
	} else if err != nil {
		log.Printf("[Signup] Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	// Secondary effect: the referrer's credit. The new account stands
	// regardless of how this turns out.
	var referralNote string
	if req.ReferralCode != "" {
		referralNote = creditReferral(ctx, req.ReferralCode, user.ID)
	}

	tokenString, err := middleware.GenerateToken(user.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	resp := gin.H{
		"message":      "User created successfully",
		"token":        tokenString,
		"userId":       user.ID.Hex(),
		"points":       user.Points,
		"referralCode": user.ReferralCode,
	}
	if referralNote != "" {
		resp["referral"] = referralNote
	}
	c.JSON(http.StatusCreated, resp)
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	user, err := store.Get().UserByEmail(ctx, req.Email)
	if err == store.ErrNotFound {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if user.PasswordHash == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	tokenString, err := middleware.GenerateToken(user.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	appendAudit(ctx, user.ID, models.AuditEventLogin, c)

	c.JSON(http.StatusOK, gin.H{
		"token":   tokenString,
		"userId":  user.ID.Hex(),
		"message": "Login successful",
	})
}

// appendAudit records who did what from where. Best-effort telemetry, only
// logged on failure.
func appendAudit(ctx context.Context, userID primitive.ObjectID, event string, c *gin.Context) {
	ip := c.ClientIP()
	entry := models.AuditLog{
		Event:              event,
		LastLoginIP:        ip,
		LastLoginTimestamp: time.Now().Unix(),
		Location:           lookupLocation(ip),
		UserAgent:          c.Request.UserAgent(),
	}
	if err := store.Get().AppendAuditLog(ctx, userID, entry); err != nil {
		log.Printf("[Audit] Failed to append %s entry: %v", event, err)
	}
}
