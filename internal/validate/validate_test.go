package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("jane@example.com"))
	assert.True(t, IsValidEmail("jane.doe+tag@sub.example.co"))
	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("jane"))
	assert.False(t, IsValidEmail("jane@example"))
	assert.False(t, IsValidEmail("jane doe@example.com"))
}

func TestIsAlphanumeric(t *testing.T) {
	assert.True(t, IsAlphanumeric("Sedan"))
	assert.True(t, IsAlphanumeric("SUV4x4"))
	assert.False(t, IsAlphanumeric("Sport Utility"))
	assert.False(t, IsAlphanumeric("Trucks!"))
	assert.False(t, IsAlphanumeric(""))
}

func TestPasswordIssues(t *testing.T) {
	assert.Empty(t, PasswordIssues("Password1234!"))

	assert.Len(t, PasswordIssues(""), 1)
	assert.NotEmpty(t, PasswordIssues("Short1!"), "too short")
	assert.NotEmpty(t, PasswordIssues("password1234!"), "no uppercase")
	assert.NotEmpty(t, PasswordIssues("PASSWORD1234!"), "no lowercase")
	assert.NotEmpty(t, PasswordIssues("PasswordHere!"), "no digit")
	assert.NotEmpty(t, PasswordIssues("Password12345"), "no special character")

	// Only !@#$%^&* count as special characters.
	assert.NotEmpty(t, PasswordIssues("Password1234?"))
}

func TestVehicleYearValid(t *testing.T) {
	now := time.Now().Year()
	assert.True(t, VehicleYearValid(1900))
	assert.True(t, VehicleYearValid(now))
	assert.True(t, VehicleYearValid(now+1))
	assert.False(t, VehicleYearValid(1899))
	assert.False(t, VehicleYearValid(now+2))
}

func TestRequired(t *testing.T) {
	assert.True(t, Required("x"))
	assert.False(t, Required(""))
	assert.False(t, Required("   "))
}
