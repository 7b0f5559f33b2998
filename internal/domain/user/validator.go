package user

import (
	"fmt"
	"unicode/utf8"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 32
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt input limit
	maxAge         = 120
)

type Validator struct{}

func NewValidator() Validator {
	return Validator{}
}

func (Validator) ValidateRegister(req RegisterRequest) error {
	if err := validateUsername(req.Username); err != nil {
		return err
	}
	if err := validatePassword(req.Password); err != nil {
		return err
	}
	if req.Age < 0 || req.Age > maxAge {
		return fmt.Errorf("age must be between 0 and %d", maxAge)
	}
	return nil
}

func (Validator) ValidateLogin(username string) error {
	return validateUsername(username)
}

func validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < minUsernameLen {
		return fmt.Errorf("username must be at least %d characters", minUsernameLen)
	}
	if n > maxUsernameLen {
		return fmt.Errorf("username must be at most %d characters", maxUsernameLen)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("password must be at most %d characters", maxPasswordLen)
	}
	return nil
}
