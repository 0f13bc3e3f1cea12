package validate

import (
	"regexp"
	"strings"
	"time"
)

var (
	emailRegex   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	alnumRegex   = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	upperRegex   = regexp.MustCompile(`[A-Z]`)
	lowerRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex   = regexp.MustCompile(`\d`)
	specialRegex = regexp.MustCompile(`[!@#$%^&*]`)
)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsAlphanumeric is the classification-name rule: letters and digits only,
// no spaces or special characters.
func IsAlphanumeric(s string) bool {
	return alnumRegex.MatchString(s)
}

// PasswordIssues returns one message per failed strength rule, empty when
// the password is acceptable.
func PasswordIssues(password string) []string {
	var issues []string
	if strings.TrimSpace(password) == "" {
		return []string{"Password is required."}
	}
	if len(password) < 12 {
		issues = append(issues, "Password must be at least 12 characters.")
	}
	if !upperRegex.MatchString(password) {
		issues = append(issues, "Password must contain at least one uppercase letter.")
	}
	if !lowerRegex.MatchString(password) {
		issues = append(issues, "Password must contain at least one lowercase letter.")
	}
	if !digitRegex.MatchString(password) {
		issues = append(issues, "Password must contain at least one digit.")
	}
	if !specialRegex.MatchString(password) {
		issues = append(issues, "Password must contain at least one special character (!@#$%^&*).")
	}
	return issues
}

// VehicleYearValid allows model years from 1900 through next year.
func VehicleYearValid(year int) bool {
	return year >= 1900 && year <= time.Now().Year()+1
}

// Required reports whether the trimmed value is non-empty.
func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}
