package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/camp-management/internal/core/common/validation"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() error {
	if err := validation.NewValidator().
		Field("email", dto.Email).Required().Email().
		Field("password", dto.Password).Required().
		Validate(); err != nil {
		return err
	}
	return nil
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (dto RefreshTokenDTO) Validate() error {
	return validation.NewValidator().
		Field("refresh_token", dto.RefreshToken).Required().
		Validate()
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
