package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrayzsiza/cse-340/internal/models"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func testAccount() *models.Account {
	return &models.Account{
		ID:        7,
		FirstName: "Jane",
		Email:     "jane@test.com",
		Type:      "Client",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testAccount(), testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.AccountID)
	assert.Equal(t, "Jane", claims.FirstName)
	assert.Equal(t, "jane@test.com", claims.Email)
	assert.Equal(t, "Client", claims.AccountType)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken(testAccount(), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := GenerateToken(testAccount(), testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, []byte("another-secret-another-secret-xx"))
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := ValidateToken("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestAccountTypeChecks(t *testing.T) {
	assert.False(t, IsStaff("Client"))
	assert.True(t, IsStaff("Employee"))
	assert.True(t, IsStaff("Admin"))
	assert.False(t, IsStaff(""))

	assert.False(t, IsAdmin("Client"))
	assert.False(t, IsAdmin("Employee"))
	assert.True(t, IsAdmin("Admin"))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("CorrectHorse1!")
	require.NoError(t, err)
	assert.NotEqual(t, "CorrectHorse1!", hash)

	assert.True(t, CheckPassword(hash, "CorrectHorse1!"))
	assert.False(t, CheckPassword(hash, "WrongHorse1!"))
}
