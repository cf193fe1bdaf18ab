package user

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Roles
const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "PROFESSOR"
)

var AllRoles = []string{RoleAdmin, RoleTeacher}

// User is the authenticated principal, as returned by the backend.
type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Name         string   `json:"nome,omitempty"`
	Email        string   `json:"email,omitempty"`
	Roles        []string `json:"roles,omitempty"`
	PasswordHash []byte   `json:"-"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// DisplayName falls back to the username when no name was given.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// Credentials is the login form.
type Credentials struct {
	Username string `json:"username" validate:"required,notblank,min=5,max=256"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}
