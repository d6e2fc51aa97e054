package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User owns leads and rent-roll rows; every record is scoped to exactly
// one user.
type User struct {
	BaseModel
	Username     string `json:"username" gorm:"unique;not null;size:50;index"`
	Email        string `json:"email" gorm:"unique;not null;size:100;index"`
	PasswordHash string `json:"-" gorm:"not null;size:255"`
	Status       string `json:"status" gorm:"default:'active';size:20"`
}

func (u *User) TableName() string {
	return "users"
}

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// SetPassword hashes and stores the password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword verifies a candidate password against the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
