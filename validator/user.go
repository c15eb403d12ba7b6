package validator // import "github.com/openleaf/openleaf/validator"

import (
	"github.com/pkg/errors"

	"github.com/openleaf/openleaf/model"
	"github.com/openleaf/openleaf/store"
	"github.com/openleaf/openleaf/util"
)

func ValidateSignupRequest(s *store.Store, user *model.UserSignupRequest) error {
	if user == nil {
		return errors.New("user is nil")
	}
	if user.Username == "" {
		return errors.New("username is empty")
	}
	if !util.UIDMatcher.MatchString(user.Username) {
		return errors.New("username is invalid")
	}
	if user.Password == "" {
		return errors.New("password is empty")
	}
	if user.Email != "" && !util.ValidateEmail(user.Email) {
		return errors.New("email is invalid")
	}
	if existing, _ := s.GetUser(&model.FindUser{Username: &user.Username}); existing != nil {
		return errors.New("Username already exists")
	}
	if user.Email != "" {
		if existing, _ := s.GetUser(&model.FindUser{Email: &user.Email}); existing != nil {
			return errors.New("Email already exists")
		}
	}
	if err := validatePassword(user.Password); err != nil {
		return err
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("password is too short")
	}
	return nil
}
