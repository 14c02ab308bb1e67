// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username                string   `json:"username" gorm:"uniqueIndex;size:50;not null"`
	PasswordHash            string   `json:"-" gorm:"column:password;size:255;not null"`
	Role                    UserRole `json:"role" gorm:"type:varchar(20);not null;default:'client'"`
	FirstName               string   `json:"firstName,omitempty" gorm:"size:100"`
	LastName                string   `json:"lastName,omitempty" gorm:"size:100"`
	Email                   string   `json:"email,omitempty" gorm:"size:255"`
	Phone                   string   `json:"phone,omitempty" gorm:"size:50"`
	Address                 string   `json:"address,omitempty" gorm:"type:text"`
	PreferredDeliveryMethod string   `json:"preferredDeliveryMethod,omitempty" gorm:"size:50"`
	PreferredDeliveryType   string   `json:"preferredDeliveryType,omitempty" gorm:"size:50"`
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
