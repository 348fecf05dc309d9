package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	// AccessTokenValidity is how long an access token stays valid.
	AccessTokenValidity = time.Hour * 24
	// RefreshTokenValidity is how long a refresh token stays valid.
	RefreshTokenValidity = time.Hour * 24 * 7
)

// GenerateTokenPair mints an access and refresh token for the user. The
// access token carries the claims the middleware reads back: id, email,
// role and the admin flag.
func GenerateTokenPair(email string, secret string, isAdmin bool, userID uint, role string) (string, string, error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"id":       userID,
		"email":    email,
		"role":     role,
		"is_admin": isAdmin,
		"type":     "access",
		"iat":      now.Unix(),
		"exp":      now.Add(AccessTokenValidity).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"id":    userID,
		"email": email,
		"type":  "refresh",
		"iat":   now.Unix(),
		"exp":   now.Add(RefreshTokenValidity).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ValidateAndGetClaims parses and verifies a token and returns its claims.
func ValidateAndGetClaims(tokenString string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// GenerateStateToken signs a short-lived token used as the OAuth state
// parameter so the callback can verify the flow started here.
func GenerateStateToken(secret string) (string, error) {
	claims := jwt.MapClaims{
		"type": "oauth_state",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(10 * time.Minute).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
