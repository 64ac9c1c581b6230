// Package model defines the gorm models persisted by eventum.
package model

import (
	"time"

	"gorm.io/gorm"
)

// UserType is the role of a user; it decides the user's privileges.
type UserType string

const (
	UserTypeUser      UserType = "user"
	UserTypeEditor    UserType = "editor"
	UserTypePublisher UserType = "publisher"
	UserTypeAdmin     UserType = "admin"
)

// UserTypes lists the known user types from least to most privileged.
var UserTypes = []UserType{UserTypeUser, UserTypeEditor, UserTypePublisher, UserTypeAdmin}

func (t UserType) Valid() bool {
	_, ok := privilegesByType[t]
	return ok
}

type Privilege string

const (
	PrivilegeEdit    Privilege = "edit"
	PrivilegePublish Privilege = "publish"
	PrivilegeAdmin   Privilege = "admin"
)

var privilegesByType = map[UserType]map[Privilege]bool{
	UserTypeUser:      {PrivilegeEdit: false, PrivilegePublish: false, PrivilegeAdmin: false},
	UserTypeEditor:    {PrivilegeEdit: true, PrivilegePublish: false, PrivilegeAdmin: false},
	UserTypePublisher: {PrivilegeEdit: true, PrivilegePublish: true, PrivilegeAdmin: false},
	UserTypeAdmin:     {PrivilegeEdit: true, PrivilegePublish: true, PrivilegeAdmin: true},
}

// User is a person known to eventum. IdentityToken is the id issued by the
// external identity provider and is what an authenticated session carries.
type User struct {
	Id            int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string    `json:"name" gorm:"not null"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null"`
	UserType      UserType  `json:"userType" gorm:"column:user_type;not null;default:user"`
	IdentityToken string    `json:"-" gorm:"column:identity_token;uniqueIndex;not null"`
	ImageURL      string    `json:"imageUrl"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BeforeCreate fills in the default user type.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserType == "" {
		u.UserType = UserTypeUser
	}
	return nil
}

// Privileges returns a copy of the privilege table for the user's type.
// Unknown types get no privileges.
func (u *User) Privileges() map[Privilege]bool {
	out := map[Privilege]bool{PrivilegeEdit: false, PrivilegePublish: false, PrivilegeAdmin: false}
	for p, v := range privilegesByType[u.UserType] {
		out[p] = v
	}
	return out
}

func (u *User) Can(p Privilege) bool {
	return privilegesByType[u.UserType][p]
}
