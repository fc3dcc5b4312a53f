package dto

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	TOTPCode string `json:"totpCode" validate:"omitempty,len=6,numeric"`
}

type TotpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	TOTPCode string `json:"totpCode" validate:"required,len=6,numeric"`
}

type AuthResponse struct {
	Token       string `json:"token,omitempty"`
	Requires2FA bool   `json:"requires2FA"`
	QRCodeImage string `json:"qrCodeImage,omitempty"`
}
