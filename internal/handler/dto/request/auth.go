package request

import "lab-seat-reservation/internal/usecase/commands"

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Name        string `json:"name" binding:"required,max=100"`
	Password    string `json:"password" binding:"required,min=8"`
	Role        string `json:"role" binding:"required,oneof=student lab_technician"`
	Description string `json:"description" binding:"max=500"`
}

func (r *RegisterRequest) ToInput() commands.RegisterInput {
	return commands.RegisterInput{
		Email:       r.Email,
		Name:        r.Name,
		Password:    r.Password,
		Role:        r.Role,
		Description: r.Description,
	}
}

type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	RememberMe bool   `json:"rememberMe"`
}

func (r *LoginRequest) ToInput() commands.LoginInput {
	return commands.LoginInput{
		Email:      r.Email,
		Password:   r.Password,
		RememberMe: r.RememberMe,
	}
}
