package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/in-nis/academy-grid/internal/config"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

// IssueTokens signs a short-lived access token and a refresh token for subject.
func IssueTokens(secret []byte, subject string) (access, refresh string, err error) {
	now := time.Now()

	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": now.Add(accessTTL).Unix(),
	}).SignedString(secret)
	if err != nil {
		return "", "", err
	}

	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"exp":  now.Add(refreshTTL).Unix(),
		"type": "refresh",
	}).SignedString(secret)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// RefreshHandler godoc
// @Summary      Refresh tokens
// @Description  Exchanges a refresh token for a new access/refresh pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  RefreshRequest  true  "Refresh token"
// @Success      200   {object} map[string]string
// @Failure      400   {object} map[string]string
// @Failure      401   {object} map[string]string
// @Router       /auth/refresh [post]
func RefreshHandler(cfg *config.Config) gin.HandlerFunc {
	jwtSecret := []byte(cfg.JWT_SECRET)

	return func(c *gin.Context) {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing refresh token"})
			return
		}

		token, err := jwt.Parse(req.RefreshToken, keyFunc(jwtSecret))
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["type"] != "refresh" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token type"})
			return
		}

		sub := subject(claims)
		if sub == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid claims"})
			return
		}

		access, refresh, err := IssueTokens(jwtSecret, sub)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign tokens"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access_token":  access,
			"refresh_token": refresh,
		})
	}
}

// RefreshRequest is the request body for token refresh
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
