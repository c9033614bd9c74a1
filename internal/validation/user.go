// Package validation holds the stateless input rules for user records.
package validation

import (
	"Userdir/internal/model"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

	// validator.Validate caches struct metadata and is safe for concurrent use.
	validate = validator.New()
)

// ValidateUser checks the four user fields in a fixed order and returns an
// InvalidInput error for the first rule violated. It has no side effects.
//
// isActive is taken as an interface{} so raw decoded values can be checked
// too; core callers pass a bool.
func ValidateUser(username, firstName, email string, isActive interface{}) error {
	if err := Username(username); err != nil {
		return err
	}
	if err := FirstName(firstName); err != nil {
		return err
	}
	if err := Email(email); err != nil {
		return err
	}
	if _, err := ActiveStatus(isActive); err != nil {
		return err
	}
	return nil
}

// Username applies the username rules: required, length, charset, and at
// least one letter once underscores are removed.
func Username(username string) error {
	if username == "" {
		return model.NewInvalidInput("Username is required")
	}

	n := utf8.RuneCountInString(username)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return model.NewInvalidInput("Username must be between 3 and 20 characters")
	}

	if !usernamePattern.MatchString(username) {
		return model.NewInvalidInput("Invalid username")
	}

	stripped := strings.ReplaceAll(username, "_", "")
	if stripped == "" || strings.IndexFunc(stripped, unicode.IsLetter) < 0 {
		return model.NewInvalidInput("Username must contain at least one letter")
	}

	return nil
}

func FirstName(firstName string) error {
	if validate.Var(firstName, "required,alpha") != nil {
		return model.NewInvalidInput("Invalid first name")
	}
	return nil
}

// Email rejects a domain ending in "." even though the email tag accepts
// the fully qualified form.
func Email(email string) error {
	if validate.Var(email, "required,email") != nil || strings.HasSuffix(email, ".") {
		return model.NewInvalidInput("Invalid email")
	}
	return nil
}

// ActiveStatus accepts only a genuine boolean, such as a JSON true/false
// decoded into an interface{}. Strings like "true", numbers and nil fail.
func ActiveStatus(v interface{}) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, model.NewInvalidInput("Invalid active status")
	}
	return b, nil
}
