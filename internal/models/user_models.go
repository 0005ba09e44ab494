package models

import (
	"fmt"
	"strings"

	"wallet_client/internal/custom_err"
)

type User struct {
	ID          UserID  `json:"id"`
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	Fullname    string  `json:"fullname"`
	PhoneNumber string  `json:"phoneNumber"`
	AvatarURL   *string `json:"avatarUrl"`
}

// FirstName is what the dashboard greets the user with.
func (u User) FirstName() string {
	fields := strings.Fields(u.Fullname)
	if len(fields) == 0 {
		return "User"
	}
	return fields[0]
}

type RegisterRequest struct {
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	Fullname    string  `json:"fullname"`
	Password    string  `json:"password"`
	PhoneNumber string  `json:"phoneNumber"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
}

func (r RegisterRequest) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"email", r.Email},
		{"username", r.Username},
		{"fullname", r.Fullname},
		{"password", r.Password},
		{"phoneNumber", r.PhoneNumber},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", custom_err.ErrValidation, f.name)
		}
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("%w: email is malformed", custom_err.ErrValidation)
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return fmt.Errorf("%w: email and password are required", custom_err.ErrValidation)
	}
	return nil
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	UserID  UserID `json:"userId"`
}
