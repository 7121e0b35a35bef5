package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var validProfile = map[string]string{
	"profileName": "Alice",
	"dateOfBirth": "1993-04-12",
	"phoneNumber": "+15550123",
}

func TestSaveProfileRequiresAllFields(t *testing.T) {
	r := newTestRouter(t)
	token, _, _ := signup(t, r, "alice@example.com", "")

	for _, missing := range []string{"profileName", "dateOfBirth", "phoneNumber"} {
		body := map[string]string{}
		for k, v := range validProfile {
			if k != missing {
				body[k] = v
			}
		}
		w := httpDo(r, "PUT", "/api/me/profile", token, body)
		require.Equal(t, http.StatusBadRequest, w.Code, "missing %s", missing)
	}

	// Nothing was saved, no bonus was paid.
	w := httpDo(r, "GET", "/api/me/points", token, nil)
	require.EqualValues(t, 20, decode(t, w)["points"])
}

func TestFirstProfileSaveAwardsBonusOnce(t *testing.T) {
	r := newTestRouter(t)
	token, _, _ := signup(t, r, "alice@example.com", "")

	w := httpDo(r, "PUT", "/api/me/profile", token, validProfile)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode(t, w)
	require.EqualValues(t, 50, resp["bonus"])
	require.EqualValues(t, 70, resp["points"])

	w = httpDo(r, "GET", "/api/me/profile", token, nil)
	resp = decode(t, w)
	require.Equal(t, "complete", resp["profileStatus"])
	profile := resp["profile"].(map[string]interface{})
	require.Equal(t, "Alice", profile["profileName"])

	w = httpDo(r, "GET", "/api/me/points/log", token, nil)
	resp = decode(t, w)
	log := resp["log"].([]interface{})
	require.Len(t, log, 2)
	require.Equal(t, "profile_completed", log[1].(map[string]interface{})["type"])
}

func TestProfileEditCooldown(t *testing.T) {
	r := newTestRouter(t)
	token, _, _ := signup(t, r, "alice@example.com", "")

	w := httpDo(r, "PUT", "/api/me/profile", token, validProfile)
	require.Equal(t, http.StatusOK, w.Code)

	// Second edit inside the window is rejected.
	w = httpDo(r, "PUT", "/api/me/profile", token, validProfile)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRepeatedSaveDoesNotDoubleCredit(t *testing.T) {
	r := newTestRouter(t)
	token, _, _ := signup(t, r, "alice@example.com", "")

	old := profileEditCooldown
	profileEditCooldown = 0
	t.Cleanup(func() { profileEditCooldown = old })

	w := httpDo(r, "PUT", "/api/me/profile", token, validProfile)
	require.Equal(t, http.StatusOK, w.Code)

	// Simulated double form-submit: the second save goes through as a
	// plain update, not a second bonus.
	update := map[string]string{
		"profileName": "Alice B.",
		"dateOfBirth": "1993-04-12",
		"phoneNumber": "+15550123",
	}
	w = httpDo(r, "PUT", "/api/me/profile", token, update)
	require.Equal(t, http.StatusOK, w.Code)

	w = httpDo(r, "GET", "/api/me/points", token, nil)
	require.EqualValues(t, 70, decode(t, w)["points"])

	w = httpDo(r, "GET", "/api/me/profile", token, nil)
	profile := decode(t, w)["profile"].(map[string]interface{})
	require.Equal(t, "Alice B.", profile["profileName"])
}

func TestProfileEditCooldownDuration(t *testing.T) {
	require.Equal(t, 5*time.Minute, profileEditCooldown)
}
