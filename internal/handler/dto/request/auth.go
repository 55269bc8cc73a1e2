package request

import (
	"futsal-reserve/internal/domain/user"
	"futsal-reserve/internal/usecase"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r *LoginRequest) ToDomain() (user.Credentials, error) {
	email, err := user.NewEmail(r.Email)
	if err != nil {
		return user.Credentials{}, err
	}
	password, err := user.NewPassword(r.Password)
	if err != nil {
		return user.Credentials{}, err
	}
	return user.NewCredentials(email, password), nil
}

type SignupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Name        string `json:"name" binding:"required,max=100"`
	PhoneNumber string `json:"phone_number" binding:"required,max=20"`
}

func (r *SignupRequest) ToParams() usecase.SignupParams {
	return usecase.SignupParams{
		Email:       r.Email,
		Password:    r.Password,
		Name:        r.Name,
		PhoneNumber: r.PhoneNumber,
	}
}
