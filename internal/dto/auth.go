package dto

type RegisterRequestDTO struct {
	Email        string `json:"email" example:"player@example.com"`
	Password     string `json:"password" example:"password123"`
	ReferralCode string `json:"referral_code,omitempty" example:"2377225624"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" example:"player@example.com"`
	Password string `json:"password" example:"password123"`
}

type AuthResponseDTO struct {
	Message string `json:"message" example:"User successfully registered"`
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
}

type PasswordResetRequestDTO struct {
	Email string `json:"email" example:"player@example.com"`
}

type PasswordResetConfirmDTO struct {
	Token    string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	Password string `json:"password" example:"new-password123"`
}

type MessageResponseDTO struct {
	Message string `json:"message" example:"Password updated"`
}
