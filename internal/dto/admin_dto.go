package dto

type ChangeRoleRequest struct {
	Email   string `json:"email" validate:"required,email"`
	NewRole string `json:"newRole" validate:"required"`
}
