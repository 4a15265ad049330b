package response

import "time"

type LoginResponse struct {
	AccessToken string        `json:"accessToken"`
	ExpiresAt   time.Time     `json:"expiresAt"`
	RememberMe  bool          `json:"rememberMe"`
	User        *UserResponse `json:"user"`
}

type RegisterResponse struct {
	ID string `json:"id"`
}
