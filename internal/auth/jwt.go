package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/myrayzsiza/cse-340/internal/models"
)

// CookieName is the cookie carrying the signed identity token.
const CookieName = "jwt"

// Claims is the typed payload of the auth cookie.
type Claims struct {
	AccountID   int    `json:"account_id"`
	FirstName   string `json:"account_firstname"`
	Email       string `json:"account_email"`
	AccountType string `json:"account_type"`
	jwt.RegisteredClaims
}

// GenerateToken signs a short-lived identity token for the account.
func GenerateToken(account *models.Account, secret []byte, ttl time.Duration) (string, error) {
	claims := Claims{
		AccountID:   account.ID,
		FirstName:   account.FirstName,
		Email:       account.Email,
		AccountType: account.Type,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ValidateToken parses and validates a token string.
func ValidateToken(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// IsStaff reports whether the account type may reach inventory management
// and the back-office.
func IsStaff(accountType string) bool {
	return accountType == "Employee" || accountType == "Admin"
}

// IsAdmin reports whether the account type may reach the admin JSON API.
func IsAdmin(accountType string) bool {
	return accountType == "Admin"
}
