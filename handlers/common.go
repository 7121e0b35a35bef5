package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Every remote call runs under this bound; expiry surfaces as a failure to
// the caller, never as success.
const requestTimeout = 10 * time.Second

func reqContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// currentUserID reads the authenticated user id set by the JWT middleware.
// Writes the 401 response itself when the id is missing or malformed.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return userID, true
}

var (
	geoClient   = &http.Client{Timeout: 3 * time.Second}
	geoEndpoint = "http://ip-api.com/json/"
)

// lookupLocation resolves an IP to "City, Country" for audit logs. Strictly
// best-effort: any failure degrades to "Unknown" rather than blocking the
// operation that triggered it.
func lookupLocation(ip string) string {
	if geoEndpoint == "" || ip == "" {
		return "Unknown"
	}

	resp, err := geoClient.Get(geoEndpoint + ip)
	if err != nil {
		return "Unknown"
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "Unknown"
	}

	var geo struct {
		Status  string `json:"status"`
		City    string `json:"city"`
		Country string `json:"country"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&geo); err != nil || geo.Status != "success" {
		return "Unknown"
	}
	if geo.Country == "" {
		return "Unknown"
	}
	if geo.City == "" {
		return geo.Country
	}
	return geo.City + ", " + geo.Country
}
