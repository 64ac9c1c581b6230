// Package service implements eventum's business logic on top of the database package.
package service

import (
	"errors"
	"fmt"

	"github.com/eventum/eventum/database"
	"github.com/eventum/eventum/database/model"

	"gorm.io/gorm"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownUserType = errors.New("unknown user type")
	ErrUserNotFound    = errors.New("user not found")
)

type UserService struct{}

func (s *UserService) ListUsers() ([]model.User, error) {
	var users []model.User
	if err := database.GetDB().Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) GetById(id int) (*model.User, error) {
	user := &model.User{}
	err := database.GetDB().First(user, id).Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByIdentityToken returns the user with the given token, or nil when there is none.
func (s *UserService) GetByIdentityToken(token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}
	user := &model.User{}
	err := database.GetDB().
		Where("identity_token = ?", token).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser stores a new user. An empty userType stores the default "user" type.
func (s *UserService) CreateUser(name, email string, userType model.UserType, token string) (*model.User, error) {
	if name == "" || email == "" || token == "" {
		return nil, fmt.Errorf("%w: name, email and identity token are required", ErrInvalidInput)
	}
	if userType != "" && !userType.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUserType, userType)
	}
	user := &model.User{
		Name:          name,
		Email:         email,
		UserType:      userType,
		IdentityToken: token,
	}
	if err := database.GetDB().Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUserType(id int, userType model.UserType) (*model.User, error) {
	if !userType.Valid() {
		return nil, ErrUnknownUserType
	}
	user, err := s.GetById(id)
	if err != nil {
		return nil, err
	}
	user.UserType = userType
	if err := database.GetDB().Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(id int) error {
	result := database.GetDB().Delete(&model.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteAllUsers removes every user and returns how many were deleted.
func (s *UserService) DeleteAllUsers() (int64, error) {
	result := database.GetDB().
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.User{})
	return result.RowsAffected, result.Error
}

func (s *UserService) CountUsers() (int64, error) {
	var count int64
	err := database.GetDB().Model(&model.User{}).Count(&count).Error
	return count, err
}
