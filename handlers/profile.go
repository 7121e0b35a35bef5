package handlers

import (
	"log"
	"net/http"
	"time"

	"desireways/models"
	"desireways/store"

	"github.com/gin-gonic/gin"
)

// Minimum interval between profile edits.
var profileEditCooldown = 5 * time.Minute

type SaveProfileRequest struct {
	ProfileName string `json:"profileName" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

func GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	user, err := store.Get().UserByID(ctx, userID)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	if err != nil {
		log.Printf("[GetMe] Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             user.ID.Hex(),
		"email":          user.Email,
		"points":         user.Points,
		"referralCode":   user.ReferralCode,
		"referralsCount": user.ReferralsCount,
		"profileStatus":  user.ProfileStatus,
		"profile":        user.Profile,
		"wishlist":       user.Wishlist,
		"createdAt":      user.CreatedAt,
	})
}

func GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	user, err := store.Get().UserByID(ctx, userID)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profileStatus": user.ProfileStatus,
		"profile":       user.Profile,
	})
}

// GetMyLogs returns the login/audit trail shown on the profile page.
func GetMyLogs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	user, err := store.Get().UserByID(ctx, userID)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	logs := user.Logs
	if logs == nil {
		logs = []models.AuditLog{}
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// SaveProfile validates the required fields, enforces the edit cooldown and
// hands out the one-time completion bonus on the first successful save.
func SaveProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "profileName, dateOfBirth and phoneNumber are required"})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	user, err := store.Get().UserByID(ctx, userID)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	now := time.Now().Unix()
	if user.LastProfileEditAt > 0 && now-user.LastProfileEditAt < int64(profileEditCooldown.Seconds()) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "Profile was edited recently, please try again later",
		})
		return
	}

	profile := models.Profile{
		ProfileName: req.ProfileName,
		DateOfBirth: req.DateOfBirth,
		PhoneNumber: req.PhoneNumber,
	}

	if user.ProfileStatus != models.ProfileComplete {
		bonus := models.PointsEntry{
			Type:        models.PointsTypeProfileCompleted,
			Points:      profileBonusPoints,
			Description: "Profile completion bonus",
			Timestamp:   now,
		}
		credited, err := store.Get().CompleteProfile(ctx, userID, profile, bonus, now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
			return
		}
		if credited {
			c.JSON(http.StatusOK, gin.H{
				"message": "Profile saved, you earned the completion bonus",
				"points":  user.Points + profileBonusPoints,
				"bonus":   profileBonusPoints,
			})
			return
		}
		// Lost the race against a concurrent first save; treat this call
		// as a plain update.
	}

	if err := store.Get().UpdateProfile(ctx, userID, profile, now); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}
	appendAudit(ctx, userID, models.AuditEventProfileUpdated, c)

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
