// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode"

	"reelist/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	return nil
}

// ValidatePassword checks if a password meets security requirements.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	hasLetter := false
	hasDigit := false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain at least one letter and one digit")
	}
	return nil
}

// ValidateName checks a display name or list name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("name must not exceed 100 characters")
	}
	return nil
}

// ValidateCategory ensures the category belongs to the fixed candidate set.
func ValidateCategory(category string) error {
	for _, c := range models.Categories {
		if category == c {
			return nil
		}
	}
	return fmt.Errorf("category must be one of: horror, action, comedy")
}

// ValidateRating ensures the rating is numeric and within 0-10.
func ValidateRating(rating string) error {
	v, err := strconv.ParseFloat(rating, 64)
	if err != nil {
		return fmt.Errorf("rating must be a number")
	}
	if v < 0 || v > 10 {
		return fmt.Errorf("rating must be between 0 and 10")
	}
	return nil
}
