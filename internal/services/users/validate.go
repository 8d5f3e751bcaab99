package users

import (
	"regexp"
	"strings"

	"timberd/internal/apperr"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	phoneRe    = regexp.MustCompile(`^\+?[0-9]{9,15}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const passwordSpecials = "@$!%*?&"

// ValidatePassword enforces the password-strength policy: at least 8
// characters drawn from letters, digits and the special set, with at least
// one lowercase, one uppercase, one digit and one special character.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return apperr.Validation("password contains an unsupported character")
		}
	}
	if !lower || !upper || !digit || !special {
		return apperr.Validation("password must include uppercase, lowercase, digit and special characters")
	}
	return nil
}

// ValidateUsername enforces the username shape: 3-30 word characters.
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return apperr.Validation("username must be 3-30 letters, digits or underscores")
	}
	return nil
}

// ValidateEmail enforces a minimal email shape.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return apperr.Validation("email is not valid")
	}
	return nil
}

// ValidatePhone enforces the phone shape. Empty phones are allowed.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phoneRe.MatchString(phone) {
		return apperr.Validation("phone number is not valid")
	}
	return nil
}
