package handlers

import (
	"log"
	"net/http"
	"os"

	"desireways/store"

	"github.com/gin-gonic/gin"
)

// Point awards. Signup and referral amounts apply once per account; the
// profile bonus once per lifetime.
const (
	signupBonusPoints   = 20
	referralBonusPoints = 20
	profileBonusPoints  = 50
)

func GetMyPoints(c *gin.Context) {
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"points": user.Points})
}

func GetPointsLog(c *gin.Context) {
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"points": user.Points,
		"log":    user.PointsLog,
	})
}

func GetReferral(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	user, err := store.Get().UserByID(ctx, userID)
	if err != nil {
		log.Printf("[GetReferral] Failed to fetch user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	baseURL := os.Getenv("REFERRAL_BASE_URL")
	if baseURL == "" {
		baseURL = "https://desireways.example"
	}

	c.JSON(http.StatusOK, gin.H{
		"referralCode":   user.ReferralCode,
		"referralUrl":    baseURL + "/signup?ref=" + user.ReferralCode,
		"referralsCount": user.ReferralsCount,
	})
}
